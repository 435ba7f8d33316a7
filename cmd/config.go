package cmd

type Config struct {
	HTTPPort      string
	Station       string
	StaffID       string
	OrderStoreURL string
	AmqpURL       string
}
