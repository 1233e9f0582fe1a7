// Package catalog reads the flat product file the register scans against.
// The file is one record per line, "barcode,name,price", re-read on every
// request so edits show up without a restart.
package catalog

import (
	"bufio"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Product is a catalog entry keyed by barcode. Price is in the minor
// currency unit.
type Product struct {
	Name  string
	Price int
}

// Load parses the catalog file into a barcode -> product map. Malformed
// lines are skipped with a warning, never fatal: a missing or unreadable
// file yields an empty catalog and callers must tolerate that. Negative
// prices are stored as their absolute value; the last line wins when a
// barcode repeats.
func Load(path string, log *slog.Logger) map[string]Product {
	products := map[string]Product{}

	f, err := os.Open(path)
	if err != nil {
		log.Warn("product catalog unavailable, using empty catalog", "path", path, "error", err)
		return products
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			log.Warn("skipping malformed catalog line", "path", path, "line", lineNum)
			continue
		}
		barcode := strings.TrimSpace(parts[0])
		if barcode == "" {
			log.Warn("skipping catalog line with empty barcode", "path", path, "line", lineNum)
			continue
		}
		price, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			log.Warn("skipping catalog line with invalid price", "path", path, "line", lineNum, "price", parts[2])
			continue
		}
		if price < 0 {
			log.Warn("negative price in catalog, using absolute value", "barcode", barcode, "price", price)
			price = -price
		}
		products[barcode] = Product{Name: strings.TrimSpace(parts[1]), Price: price}
	}
	if err := sc.Err(); err != nil {
		log.Warn("failed reading product catalog, using empty catalog", "path", path, "error", err)
		return map[string]Product{}
	}
	return products
}
