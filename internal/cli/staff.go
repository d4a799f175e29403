package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maritestore/pos/internal/app"
	"github.com/maritestore/pos/internal/domain/cart"
	"github.com/maritestore/pos/internal/domain/checkout"
	"github.com/maritestore/pos/internal/domain/ledger"
	"github.com/maritestore/pos/internal/receipt"
	"github.com/maritestore/pos/internal/report"
)

func newStaffCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "staff",
		Short: "Interactive staff session: place orders, view and search inventory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			s := newSession(a, cmd.InOrStdin(), cmd.OutOrStdout())
			return s.staffLoop(cmd.Context())
		},
	}
}

func (s *session) staffLoop(ctx context.Context) error {
	crt := cart.New()
	for {
		s.println()
		s.println("Staff Menu:")
		s.println("1. Place Order")
		s.println("2. View Inventory")
		s.println("3. Search Product")
		s.println("4. Exit")
		input, err := s.prompt("Select an option: ")
		if err != nil {
			return nil
		}
		switch input {
		case "1":
			if err := s.placeOrder(ctx, crt); err != nil {
				return err
			}
		case "2":
			s.viewInventory()
		case "3":
			if err := s.searchProduct(); err != nil {
				return err
			}
		case "4":
			s.println("Exiting. Goodbye!")
			return nil
		default:
			s.println("Invalid option. Please try again.")
		}
	}
}

func (s *session) placeOrder(ctx context.Context, crt *cart.Cart) error {
	for {
		s.println()
		s.println("Available Categories:")
		categories := s.app.Catalog.Categories()
		if len(categories) == 0 {
			s.println("No categories found.")
		}
		for _, c := range categories {
			s.printf("  %s\n", c)
		}

		s.println()
		s.println("Options:")
		s.println("  c               add a product by ID or name")
		s.println("  i [category]    view products in a category")
		s.println("  i a             view all inventory")
		s.println("  cart            view your cart and proceed to checkout")
		s.println("  b               return to the previous menu")
		input, err := s.prompt("\nEnter your choice: ")
		if err != nil {
			return nil
		}
		input = strings.ToLower(input)

		switch {
		case input == "":
			continue
		case input == "c":
			done, err := s.addToCart(ctx, crt)
			if err != nil || done {
				return err
			}
		case strings.HasPrefix(input, "i "):
			name := strings.TrimSpace(input[2:])
			if name == "a" {
				s.viewInventory()
				continue
			}
			items := s.app.Catalog.FilterByCategory(name)
			if len(items) == 0 {
				s.printf("Category %q not found.\n", name)
				continue
			}
			s.printf("\nProducts in %q category:\n", name)
			renderItems(s.out, items)
		case input == "cart":
			done, err := s.viewCart(ctx, crt)
			if err != nil || done {
				return err
			}
		case input == "b":
			return nil
		default:
			s.println("Invalid input. Please try again.")
		}
	}
}

// addToCart resolves products by ID or name and adds them to the cart. It
// returns done=true when the inner menu finished with a checkout.
func (s *session) addToCart(ctx context.Context, crt *cart.Cart) (bool, error) {
	for {
		s.println()
		s.println("Your Cart:")
		s.showCart(crt)

		input, err := s.prompt("\nEnter Product ID or Name (or type 'b' to go back): ")
		if err != nil || strings.EqualFold(input, "b") {
			return false, nil
		}

		item, ok := s.app.Catalog.FindByIDOrName(input)
		if !ok {
			s.println("Product not found. Please try again.")
			continue
		}

		qtyInput, err := s.prompt(fmt.Sprintf("Enter quantity for %s (Available: %d): ", item.Name, item.Quantity))
		if err != nil {
			return false, nil
		}
		qty, convErr := parseQuantity(qtyInput)
		if convErr != nil {
			s.println("Invalid quantity. Please try again.")
			continue
		}
		if addErr := crt.Add(item, qty); addErr != nil {
			var iq *cart.InvalidQuantityError
			if errors.As(addErr, &iq) {
				s.printf("Invalid quantity %d for %s (available: %d). Please try again.\n", iq.Requested, item.Name, iq.Available)
				continue
			}
			return false, addErr
		}
		s.printf("%d units of %s added to the cart.\n", qty, item.Name)

		for {
			s.println()
			s.println("Options:")
			s.println("1. Add more products.")
			s.println("2. Clear the cart.")
			s.println("3. Checkout.")
			s.println("4. Go back to category selection.")
			option, err := s.prompt("\nEnter your choice (1-4): ")
			if err != nil {
				return false, nil
			}
			switch option {
			case "1":
			case "2":
				crt.Clear()
				s.println("Cart cleared.")
			case "3":
				return true, s.checkout(ctx, crt)
			case "4":
				return false, nil
			default:
				s.println("Invalid input. Please try again.")
				continue
			}
			break
		}
	}
}

// viewCart shows the aggregated cart and offers checkout. It returns
// done=true when a checkout finished the order flow.
func (s *session) viewCart(ctx context.Context, crt *cart.Cart) (bool, error) {
	s.println()
	s.println("Your Cart:")
	s.showCart(crt)
	if crt.IsEmpty() {
		return false, nil
	}
	confirm, err := s.prompt("\nWould you like to checkout now? (yes/no): ")
	if err != nil {
		return false, nil
	}
	if !strings.EqualFold(confirm, "yes") {
		return false, nil
	}
	return true, s.checkout(ctx, crt)
}

func (s *session) showCart(crt *cart.Cart) {
	if crt.IsEmpty() {
		s.println("Your cart is empty.")
		return
	}
	renderLines(s.out, crt.Aggregate())
}

// checkout runs the cash settlement loop. Nothing is mutated before the
// engine commits, so cancelling here simply returns.
func (s *session) checkout(ctx context.Context, crt *cart.Cart) error {
	if crt.IsEmpty() {
		s.println("Your cart is empty. Cannot proceed to checkout.")
		return nil
	}

	s.println()
	s.println("Order Summary:")
	renderLines(s.out, crt.Aggregate())
	s.printf("%-20s %10s %s\n", "Total Price:", crt.Subtotal().StringFixed(2), s.app.Config.Currency)

	for {
		input, err := s.prompt("Enter cash amount (or type 'cancel' to abort): ")
		if err != nil {
			return nil
		}
		if strings.EqualFold(input, "cancel") {
			s.println("Checkout canceled.")
			return nil
		}
		cash, convErr := decimal.NewFromString(input)
		if convErr != nil {
			s.println("Invalid amount. Please try again.")
			continue
		}

		tx, err := s.app.Checkout.Checkout(ctx, s.app.Catalog, crt, cash)
		if err != nil {
			var tender *checkout.InsufficientTenderError
			if errors.As(err, &tender) {
				s.printf("Insufficient cash: subtotal is %s %s. Please try again.\n",
					tender.Subtotal.StringFixed(2), s.app.Config.Currency)
				continue
			}
			s.printf("Checkout failed: %v\n", err)
			return nil
		}

		s.afterCommit(ctx, tx)
		return nil
	}
}

// afterCommit renders the committed transaction: journal entry, refreshed
// monthly report workbook, and the selected receipt artifact.
func (s *session) afterCommit(ctx context.Context, tx *checkout.Transaction) {
	lg := zctx.From(ctx)
	s.printf("Change: %s %s\n", tx.Change.StringFixed(2), s.app.Config.Currency)

	if err := s.app.Journal.Append(ctx, tx); err != nil {
		lg.Warn("Failed to journal transaction", zap.String("id", tx.ID), zap.Error(err))
	}

	period := ledger.PeriodOf(tx.CreatedAt)
	if entries, err := s.app.Ledgers.Load(ctx, period); err != nil {
		lg.Warn("Failed to load ledger for report", zap.String("period", string(period)), zap.Error(err))
	} else if err := report.WriteMonthly(report.WorkbookPath(s.app.Config.ReportsDir, period), period, entries); err != nil {
		lg.Warn("Failed to write monthly report workbook", zap.Error(err))
	}

	for {
		s.println()
		s.println("Select Receipt Option:")
		s.println("1. Text-Based Console Receipt")
		s.println("2. Spreadsheet Receipt")
		s.println("3. Do Not Print Receipt")
		option, err := s.prompt("Enter your choice (1-3): ")
		if err != nil {
			option = "3"
		}
		switch option {
		case "1":
			s.println()
			receipt.RenderText(s.out, tx, s.app.Config.StoreName, s.app.Config.Currency)
		case "2":
			path := receiptPath(s.app.Config.ReceiptsDir, tx)
			if err := receipt.WriteWorkbook(path, tx, s.app.Config.StoreName, s.app.Config.Currency); err != nil {
				s.printf("Error generating receipt: %v\n", err)
			} else {
				s.printf("Receipt saved: %s\n", path)
			}
		case "3":
			s.println("No receipt will be printed.")
		default:
			s.println("Invalid input. Please select a valid option.")
			continue
		}
		break
	}

	s.println("Checkout complete. Inventory and sales report have been updated. Thank you for your order!")
}

func parseQuantity(input string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(input))
}

func receiptPath(dir string, tx *checkout.Transaction) string {
	return filepath.Join(dir, fmt.Sprintf("Receipt_%s.xlsx", tx.CreatedAt.Format("20060102_150405")))
}

func (s *session) viewInventory() {
	items := s.app.Catalog.Items()
	if len(items) == 0 {
		s.println("No products found in inventory.")
		return
	}
	s.println()
	renderItems(s.out, items)
}

func (s *session) searchProduct() error {
	input, err := s.prompt("Enter Product ID or Name to search: ")
	if err != nil {
		return nil
	}
	results := s.app.Catalog.Search(input)
	if len(results) == 0 {
		s.println("No matching products found.")
		return nil
	}
	renderItems(s.out, results)
	return nil
}
