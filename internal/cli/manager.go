package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/maritestore/pos/internal/app"
	"github.com/maritestore/pos/internal/domain/catalog"
)

func newManagerCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "manager",
		Short: "Interactive manager session: maintain the product catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			s := newSession(a, cmd.InOrStdin(), cmd.OutOrStdout())
			ok, err := s.authenticateManager()
			if err != nil {
				return err
			}
			if !ok {
				s.println("Authentication failed.")
				return nil
			}
			return s.managerLoop(cmd.Context())
		},
	}
}

func (s *session) authenticateManager() (bool, error) {
	password, err := s.prompt("Enter Manager Password: ")
	if err != nil {
		return false, nil
	}
	return password == s.app.Config.ManagerPassword, nil
}

func (s *session) managerLoop(ctx context.Context) error {
	for {
		s.println()
		s.println("Manager Menu:")
		s.println("1. Add Product")
		s.println("2. Update Product")
		s.println("3. Delete Product")
		s.println("4. View Inventory")
		s.println("5. Search Product")
		s.println("6. Save Changes")
		s.println("7. Exit")
		input, err := s.prompt("Select an option: ")
		if err != nil {
			return nil
		}
		switch input {
		case "1":
			s.addProduct()
		case "2":
			s.updateProduct()
		case "3":
			s.deleteProduct()
		case "4":
			s.viewInventory()
		case "5":
			if err := s.searchProduct(); err != nil {
				return err
			}
		case "6":
			if err := s.app.Catalogs.Save(ctx, s.app.Catalog.Items()); err != nil {
				s.printf("Error saving inventory: %v\n", err)
				continue
			}
			s.println("Changes saved successfully.")
		case "7":
			s.println("Exiting. Goodbye!")
			return nil
		default:
			s.println("Invalid option. Please try again.")
		}
	}
}

// addProduct walks through the item fields; typing 'exit' at any prompt
// abandons the flow.
func (s *session) addProduct() {
	s.println("Add Product - Type 'exit' anytime to return to the menu.")

	id, ok := s.promptRequired("Enter Product ID: ", func(v string) string {
		if _, exists := s.app.Catalog.FindByID(v); exists {
			return "Product ID already exists. Please enter a unique ID."
		}
		return ""
	})
	if !ok {
		return
	}
	name, ok := s.promptRequired("Enter Product Name: ", nil)
	if !ok {
		return
	}
	category, ok := s.promptRequired("Enter Product Category: ", nil)
	if !ok {
		return
	}

	var qty int
	for {
		input, err := s.prompt("Enter Quantity: ")
		if err != nil || strings.EqualFold(input, "exit") {
			return
		}
		v, convErr := strconv.Atoi(input)
		if convErr != nil || v < 0 {
			s.println("Invalid input. Quantity must be a non-negative integer.")
			continue
		}
		qty = v
		break
	}

	var price decimal.Decimal
	for {
		input, err := s.prompt("Enter Price: ")
		if err != nil || strings.EqualFold(input, "exit") {
			return
		}
		v, convErr := decimal.NewFromString(input)
		if convErr != nil || v.IsNegative() {
			s.println("Invalid input. Price must be a non-negative decimal value.")
			continue
		}
		price = v
		break
	}

	if err := s.app.Catalog.Add(catalog.Item{ID: id, Name: name, Category: category, Quantity: qty, Price: price}); err != nil {
		s.printf("Error adding product: %v\n", err)
		return
	}
	s.println("Product added successfully!")
}

// promptRequired re-prompts until a non-empty value passes the optional
// validator; 'exit' abandons with ok=false.
func (s *session) promptRequired(msg string, validate func(string) string) (string, bool) {
	for {
		input, err := s.prompt(msg)
		if err != nil || strings.EqualFold(input, "exit") {
			return "", false
		}
		if input == "" {
			s.println("Value cannot be empty. Please try again.")
			continue
		}
		if validate != nil {
			if problem := validate(input); problem != "" {
				s.println(problem)
				continue
			}
		}
		return input, true
	}
}

// updateProduct applies a partial update; blank answers keep current values.
func (s *session) updateProduct() {
	id, err := s.prompt("Enter Product ID to update: ")
	if err != nil {
		return
	}
	if _, ok := s.app.Catalog.FindByID(id); !ok {
		s.println("Product not found.")
		return
	}

	name, _ := s.prompt("Enter New Name (leave blank to keep current): ")
	category, _ := s.prompt("Enter New Category (leave blank to keep current): ")
	qtyInput, _ := s.prompt("Enter New Quantity (leave blank to keep current): ")
	priceInput, _ := s.prompt("Enter New Price (leave blank to keep current): ")

	upd := catalog.Update{}
	if name != "" {
		upd.Name = &name
	}
	if category != "" {
		upd.Category = &category
	}
	if qtyInput != "" {
		if qty, convErr := strconv.Atoi(qtyInput); convErr == nil {
			upd.Quantity = &qty
		} else {
			s.println("Ignoring invalid quantity.")
		}
	}
	if priceInput != "" {
		if price, convErr := decimal.NewFromString(priceInput); convErr == nil {
			upd.Price = &price
		} else {
			s.println("Ignoring invalid price.")
		}
	}

	if err := s.app.Catalog.Update(id, upd); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.println("Product not found.")
			return
		}
		s.printf("Error updating product: %v\n", err)
		return
	}
	s.println("Product updated successfully.")
}

func (s *session) deleteProduct() {
	id, err := s.prompt("Enter Product ID to delete: ")
	if err != nil {
		return
	}
	if err := s.app.Catalog.Delete(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.println("Product not found.")
			return
		}
		s.printf("Error deleting product: %v\n", err)
		return
	}
	s.println("Product deleted successfully.")
}
