package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	RedisAddr        string
	RedisPassword    string
	WalletRPCURL     string
	RecipientAddress string
	TokenAddress     string
	OnrampURL        string
	AdminUsername    string
	AdminPassword    string
}

// Load reads the environment, optionally primed from a .env file.
func Load() Config {
	if err := godotenv.Load(".env"); err == nil {
		log.Printf("config: .env loaded")
	}
	return Config{
		Addr:             getenv("STORE_ADDR", ":8080"),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		WalletRPCURL:     getenv("WALLET_RPC_URL", ""),
		RecipientAddress: getenv("STORE_RECIPIENT_ADDRESS", "0x82EdA563621E15EF35c780Fe1ea8861DF7558ca9"),
		TokenAddress:     getenv("STORE_TOKEN_ADDRESS", "0xdc471C5C72dE413e4877CeD49B8Bd0ce72796722"),
		OnrampURL:        getenv("STORE_ONRAMP_URL", "https://pay.coinbase.com/buy/select-asset"),
		AdminUsername:    getenv("STORE_ADMIN_USER", "admin"),
		AdminPassword:    getenv("STORE_ADMIN_PASSWORD", "changeme"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
