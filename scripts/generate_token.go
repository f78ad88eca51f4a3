package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Mints a service token for the license administration endpoints, which
// sit outside the tenant-bound login flow.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	// Define command line flags
	userID := flag.String("user", "", "User ID for the token")
	roles := flag.String("roles", "admin", "Comma-separated list of roles")
	expirationHours := flag.Int("exp", 24, "Token expiration in hours")
	licenseKey := flag.String("license", "", "License key claim (optional for admin tokens)")
	flag.Parse()

	if *userID == "" {
		log.Fatal("User ID is required")
	}

	// Parse roles
	rolesList := []string{}
	if *roles != "" {
		rolesList = strings.Split(*roles, ",")
	}

	// Create claims
	claims := jwt.MapClaims{
		"session_id":  uuid.New().String(),
		"user_id":     *userID,
		"license_key": *licenseKey,
		"roles":       rolesList,
		"exp":         time.Now().Add(time.Duration(*expirationHours) * time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	}

	// Get JWT secret from environment
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT_SECRET_KEY environment variable is required")
	}

	// Create and sign token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("Error signing token: %v", err)
	}

	fmt.Println(signed)
}
