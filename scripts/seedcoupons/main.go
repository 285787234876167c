package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Creates sample gzipped coupon definition files for local development.
// Each line is code,discount_type,discount_value,total_count[,description].
func main() {
	dataDir := "data/coupons"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	files := map[string][]string{
		"coupons_welcome.csv.gz": {
			"# welcome offers",
			"WELCOME10,percentage,10,1000,Ten percent off for new customers",
			"WELCOME20,percentage,20,500,Twenty percent off for new customers",
			"FIRSTORDER,fixed,15,2000,Flat 15 off the first order",
		},
		"coupons_seasonal.csv.gz": {
			"# seasonal offers",
			"SUMMER25,percentage,25,300,Summer sale",
			"FESTIVE50,fixed,50,150,Festive season flat discount",
			"CLEARANCE,percentage,40,100,End of season clearance",
		},
	}

	for filename, lines := range files {
		filePath := filepath.Join(dataDir, filename)

		if err := createCouponFile(filePath, lines); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d lines\n", filePath, len(lines))
	}

	fmt.Println("\nSample coupon files created successfully!")
	fmt.Println("Run the server with:")
	fmt.Println("  COUPON_IMPORT_ENABLED=true \\")
	fmt.Println("  COUPON_IMPORT_FILES=data/coupons/coupons_welcome.csv.gz,data/coupons/coupons_seasonal.csv.gz")
}

func createCouponFile(filePath string, lines []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintf(gzipWriter, "%s\n", line); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
	}

	return nil
}
