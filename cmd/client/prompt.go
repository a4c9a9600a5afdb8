package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sumith1510/commodities-manager/internal/auth"
	"github.com/sumith1510/commodities-manager/internal/models"
	"github.com/sumith1510/commodities-manager/internal/policy"
	"github.com/sumith1510/commodities-manager/internal/view"
)

// commands maps each capability to the shell commands it unlocks.
var commands = map[models.Capability]string{
	models.ViewDashboard: "dashboard",
	models.ViewCatalog:   "list [query], sort <column>",
	models.MutateCatalog: "add, edit <id>, delete <id>",
}

// printMenu lists only the commands the current role is permitted to use.
func (s *shell) printMenu(role models.Role) {
	fmt.Println("Commands:")
	for _, capability := range policy.Capabilities(role) {
		fmt.Printf("  %s\n", commands[capability])
	}
	fmt.Println("  theme, whoami, logout, exit")
}

// promptLogin asks for credentials until a login succeeds. It returns
// nil when stdin closes.
func (s *shell) promptLogin() *models.Session {
	for {
		username, ok := s.prompt("Username: ")
		if !ok {
			return nil
		}
		password, ok := s.prompt("Password: ")
		if !ok {
			return nil
		}

		session, err := s.sessions.Login(username, password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				fmt.Println("Invalid username or password")
				continue
			}
			fmt.Println("Login failed:", err)
			continue
		}
		return &session
	}
}

// promptDraft collects the raw fields of a new product.
func (s *shell) promptDraft() models.ProductDraft {
	var d models.ProductDraft
	d.Name, _ = s.prompt("Name: ")
	d.Category, _ = s.prompt("Category: ")
	d.Price, _ = s.prompt("Price: ")
	d.Stock, _ = s.prompt("Stock: ")
	d.Unit, _ = s.prompt("Unit (kg/L/ton/bag): ")
	return d
}

// promptPatch collects edited fields; blank answers keep current values.
func (s *shell) promptPatch() models.ProductPatch {
	var p models.ProductPatch
	p.Name = s.promptOptional("Name (blank keeps current): ")
	p.Category = s.promptOptional("Category (blank keeps current): ")
	p.Price = s.promptOptional("Price (blank keeps current): ")
	p.Stock = s.promptOptional("Stock (blank keeps current): ")
	p.Unit = s.promptOptional("Unit (blank keeps current): ")
	return p
}

func (s *shell) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

func (s *shell) promptOptional(label string) *string {
	answer, ok := s.prompt(label)
	if !ok || answer == "" {
		return nil
	}
	return &answer
}

// renderDashboard prints the aggregate metrics.
func (s *shell) renderDashboard() {
	d := view.Summarize(s.catalog.List())
	fmt.Println("Dashboard")
	fmt.Printf("  Total SKUs:        %d\n", d.TotalSKUs)
	fmt.Printf("  Inventory (units): %d\n", d.TotalInventory)
	fmt.Printf("  Average Price:     $%s\n", d.AveragePrice)
	fmt.Printf("  Low-stock Items:   %d (< 20 in stock)\n", d.LowStockCount)
}

// renderTable prints the filtered, sorted product table.
func (s *shell) renderTable() {
	products := view.Table(s.catalog.List(), s.query, s.spec)
	if len(products) == 0 {
		fmt.Println("No products found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\t%s\t%s\t%s\t%s\n",
		s.header(view.SortByName, "Product"),
		s.header(view.SortByCategory, "Category"),
		s.header(view.SortByPrice, "Price"),
		s.header(view.SortByStock, "Stock"),
		s.header(view.SortByUnit, "Unit"))
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%s\t%d\t%s\n",
			p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Stock, p.Unit)
	}
	_ = w.Flush()
}

// header marks the active sort column with its direction.
func (s *shell) header(key view.SortKey, label string) string {
	if s.spec.Key != key {
		return label
	}
	if s.spec.Desc {
		return label + " ▼"
	}
	return label + " ▲"
}
