package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                   string
	MongoURI               string
	DBName                 string
	JWTSecret              string
	AdminPassword          string
	AdminEmail             string
	AdminPhone             string
	MembershipFee          string
	AutoApprovePayments    bool
	VerifiedReferencesOnly bool
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	autoApprove := false
	if val := os.Getenv("AUTO_APPROVE_PAYMENTS"); val != "" {
		autoApprove, err = strconv.ParseBool(val)
		if err != nil {
			log.Fatalf("Invalid AUTO_APPROVE_PAYMENTS: %v", err)
		}
	}

	// References are restricted to verified members unless explicitly relaxed.
	verifiedRefs := true
	if val := os.Getenv("REQUIRE_VERIFIED_REFERENCES"); val != "" {
		verifiedRefs, err = strconv.ParseBool(val)
		if err != nil {
			log.Fatalf("Invalid REQUIRE_VERIFIED_REFERENCES: %v", err)
		}
	}

	fee := os.Getenv("MEMBERSHIP_FEE")
	if fee == "" {
		fee = "$39"
	}

	return Config{
		Port:                   os.Getenv("PORT"),
		MongoURI:               os.Getenv("MONGO_URI"),
		DBName:                 os.Getenv("DB_NAME"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		AdminPassword:          os.Getenv("ADMIN_PASSWORD"),
		AdminEmail:             os.Getenv("ADMIN_EMAIL"),
		AdminPhone:             os.Getenv("ADMIN_PHONE"),
		MembershipFee:          fee,
		AutoApprovePayments:    autoApprove,
		VerifiedReferencesOnly: verifiedRefs,
	}
}
