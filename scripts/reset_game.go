package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

// Wipes all game activity (offers, trades, ledger, production, gifts)
// and restores every team's balance to its initial value. Teams and
// their inventories survive.
func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	fmt.Println("Connected to database")

	tables := []string{
		"transactions",
		"production_logs",
		"marketplace_offers",
		"trade_requests",
		"gifts",
	}
	for _, table := range tables {
		result, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			log.Fatalf("Failed to clear %s: %v", table, err)
		}
		rows, _ := result.RowsAffected()
		fmt.Printf("Cleared %s (%d rows)\n", table, rows)
	}

	result, err := db.Exec(`
		UPDATE teams
		SET current_balance = initial_balance
		WHERE is_admin = false
	`)
	if err != nil {
		log.Fatal("Failed to reset balances:", err)
	}
	rows, _ := result.RowsAffected()
	fmt.Printf("Reset balances for %d teams\n", rows)

	result, err = db.Exec(`UPDATE game_state SET status = 'not_started'`)
	if err != nil {
		log.Fatal("Failed to reset game status:", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		fmt.Println("No game state row to reset")
	}

	// Verify cleanup
	fmt.Println("\nVerification:")
	for _, table := range tables {
		var count int
		db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
		fmt.Printf("   %s: %d\n", table, count)
	}

	fmt.Println("\nGame reset complete")
}
