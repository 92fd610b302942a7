package cmd

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	CarrierAPIBaseURL   string
	CarrierClientID     string
	CarrierClientSecret string
	PartnerName         string
	PartnerAPIKey       string
}
