package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopsphere/storefront-client/internal/admin"
	"github.com/shopsphere/storefront-client/internal/api"
	"github.com/shopsphere/storefront-client/internal/catalog"
	"github.com/shopsphere/storefront-client/internal/checkout"
	"github.com/shopsphere/storefront-client/internal/models"
	"github.com/shopsphere/storefront-client/internal/payment"
	"github.com/shopsphere/storefront-client/internal/store"
)

// maxLineQuantity is the UI-level clamp; the ledger itself enforces no
// upper bound.
const maxLineQuantity = 100

type session struct {
	store     *store.Store
	api       *api.Client
	catalog   *catalog.Service
	admin     *admin.Service
	submitter *checkout.Submitter

	in  *bufio.Scanner
	out io.Writer
}

func newSession(st *store.Store, apiClient *api.Client, catalogService *catalog.Service, adminService *admin.Service, submitter *checkout.Submitter) *session {
	return &session{
		store:     st,
		api:       apiClient,
		catalog:   catalogService,
		admin:     adminService,
		submitter: submitter,
	}
}

func (s *session) run(in io.Reader, out io.Writer) {

	s.in = bufio.NewScanner(in)
	s.out = out

	ctx := context.Background()

	fmt.Fprintln(out, "storefront - type 'help' for commands")

	for {
		fmt.Fprint(out, "> ")

		if !s.in.Scan() {
			return
		}

		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}

		command, args := fields[0], fields[1:]

		switch command {
		case "help":
			s.help()
		case "login":
			s.login(ctx, args)
		case "logout":
			s.fail(s.store.Dispatch(ctx, store.ClearAuth{}))
		case "products":
			s.products(ctx, args)
		case "product":
			s.product(ctx, args)
		case "compare":
			s.compare(ctx, args)
		case "add":
			s.addToCart(ctx, args)
		case "cart":
			s.showCart()
		case "set":
			s.setQuantity(ctx, args)
		case "remove":
			s.removeFromCart(ctx, args)
		case "clear":
			s.fail(s.store.ClearCart(ctx))
		case "checkout":
			s.checkout(ctx)
		case "orders":
			s.orders(ctx, args)
		case "order":
			s.order(ctx, args)
		case "notifications":
			s.notifications(ctx)
		case "registries":
			s.registries(ctx)
		case "admin":
			s.adminCommand(ctx, args)
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(s.out, "unknown command %q - type 'help'\n", command)
		}
	}
}

func (s *session) help() {
	fmt.Fprint(s.out, `commands:
  login <email> <password>      sign in
  logout                        sign out
  products [page]               browse the catalog
  product <id>                  show one product
  compare <categoryId> <id...>  comparison table
  add <productId> <qty>         add to cart
  cart                          show the cart
  set <productId> <qty>         set exact quantity (0 removes)
  remove <productId>            remove a line
  clear                         empty the cart
  checkout                      start checkout
  orders [page]                 order history
  order <id>                    show one order
  notifications                 list notifications
  registries                    list gift registries
  admin status <orderId> <st>   update order status
  quit                          leave (state is persisted)
`)
}

// fail prints an error if there is one and reports whether it fired.
func (s *session) fail(err error) bool {
	if err != nil {
		fmt.Fprintf(s.out, "error: %s\n", err.Error())

		return true
	}

	return false
}

func (s *session) prompt(label string) string {
	fmt.Fprintf(s.out, "%s: ", label)

	if !s.in.Scan() {
		return ""
	}

	return strings.TrimSpace(s.in.Text())
}

func (s *session) promptInt(label string) int {
	n, err := strconv.Atoi(s.prompt(label))
	if err != nil {
		return 0
	}

	return n
}

func (s *session) login(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "usage: login <email> <password>")

		return
	}

	result, err := s.api.Login(ctx, &models.LoginRequest{Email: args[0], Password: args[1]})
	if s.fail(err) {
		return
	}

	if s.fail(s.store.Dispatch(ctx, store.SetAuth{User: result.User, Token: result.Token})) {
		return
	}

	fmt.Fprintf(s.out, "signed in as %s\n", result.User.Email)
}

func (s *session) products(ctx context.Context, args []string) {
	page := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			page = n
		}
	}

	products, total, err := s.catalog.Browse(ctx, page, 20)
	if s.fail(err) {
		return
	}

	for _, p := range products {
		stock := "in stock"
		if !p.InStock {
			stock = "out of stock"
		}

		fmt.Fprintf(s.out, "%-12s %-30s %10s  %s\n", p.ID, p.Name, catalog.FormatPrice(p.Price), stock)
	}

	fmt.Fprintf(s.out, "page %d - %d products total\n", page, total)
}

func (s *session) product(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: product <id>")

		return
	}

	p, err := s.catalog.Product(ctx, args[0])
	if s.fail(err) {
		return
	}

	fmt.Fprintf(s.out, "%s - %s\n%s\n", p.Name, catalog.FormatPrice(p.Price), p.Description)

	for name, value := range p.Features {
		fmt.Fprintf(s.out, "  %s: %s\n", name, value)
	}
}

func (s *session) compare(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.out, "usage: compare <categoryId> <productId> <productId> [...]")

		return
	}

	rows, err := s.catalog.Compare(ctx, args[0], args[1:])
	if s.fail(err) {
		return
	}

	for _, row := range rows {
		fmt.Fprintf(s.out, "%-20s %s\n", row.Field.Name, strings.Join(row.Values, " | "))
	}
}

func clampQuantity(q int) int {
	if q < 0 {
		return 0
	}

	if q > maxLineQuantity {
		return maxLineQuantity
	}

	return q
}

func (s *session) addToCart(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "usage: add <productId> [qty]")

		return
	}

	quantity := 1
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			quantity = n
		}
	}

	quantity = clampQuantity(quantity)
	if quantity == 0 {
		return
	}

	product, err := s.catalog.Product(ctx, args[0])
	if s.fail(err) {
		return
	}

	if s.fail(s.store.Dispatch(ctx, store.AddItem{Product: *product, Quantity: quantity})) {
		return
	}

	s.showCart()
}

func (s *session) setQuantity(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "usage: set <productId> <qty>")

		return
	}

	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(s.out, "quantity must be a number")

		return
	}

	if s.fail(s.store.Dispatch(ctx, store.SetQuantity{ProductID: args[0], Quantity: clampQuantity(quantity)})) {
		return
	}

	s.showCart()
}

func (s *session) removeFromCart(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: remove <productId>")

		return
	}

	s.fail(s.store.Dispatch(ctx, store.RemoveItem{ProductID: args[0]}))
}

func (s *session) showCart() {
	ledger := s.store.Ledger()

	if ledger.IsEmpty() {
		fmt.Fprintln(s.out, "your cart is empty")

		return
	}

	for _, item := range ledger.Items() {
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(s.out, "%-12s %-30s x%-3d %10s\n", item.ProductID, item.Product.Name, item.Quantity, catalog.FormatPrice(lineTotal))
	}

	fmt.Fprintf(s.out, "%d items - total %s\n", ledger.TotalItems(), catalog.FormatPrice(ledger.TotalAmount()))
}

func (s *session) checkout(ctx context.Context) {

	ledger := s.store.Ledger()

	if ledger.IsEmpty() {
		fmt.Fprintln(s.out, "your cart is empty")

		return
	}

	bundle, err := s.api.CheckoutData(ctx)
	if s.fail(err) {
		return
	}

	form := checkout.NewForm()

	s.chooseAddress(form, bundle.Addresses)
	s.choosePayment(form, bundle.PaymentMethods)
	s.applyGiftCard(ctx, form, ledger.TotalAmount())

	fmt.Fprintf(s.out, "chargeable total: %s\n", catalog.FormatPrice(form.ChargeableTotal(ledger.TotalAmount())))

	if s.prompt("place order? [y/N]") != "y" {
		return
	}

	confirmation, err := s.submitter.Submit(ctx, form, ledger)
	if err != nil {
		s.printFormErrors(form.Errors())

		return
	}

	fmt.Fprintf(s.out, "order placed: %s (paid with %s)\n",
		confirmation.OrderID, payment.MaskNumber(confirmation.CardNumber))
}

func (s *session) chooseAddress(form *checkout.Form, saved []models.Address) {

	if len(saved) > 0 {
		fmt.Fprintln(s.out, "saved addresses:")

		for i, addr := range saved {
			fmt.Fprintf(s.out, "  [%d] %s, %s, %s %s, %s\n", i+1, addr.Street, addr.City, addr.State, addr.ZipCode, addr.Country)
		}

		if choice := s.promptInt("pick a saved address (0 for new)"); choice >= 1 && choice <= len(saved) {
			form.SelectAddress(saved[choice-1])

			return
		}
	}

	form.SetStreet(s.prompt("street"))
	form.SetCity(s.prompt("city"))
	form.SetState(s.prompt("state"))
	form.SetZipCode(s.prompt("zip code"))
	form.SetCountry(s.prompt("country"))
}

func (s *session) choosePayment(form *checkout.Form, saved []models.PaymentMethod) {

	paymentType := models.PaymentType(s.prompt("payment type (credit/debit/paypal/bank_transfer)"))
	form.SetPaymentType(paymentType)

	if !paymentType.IsCard() {
		return
	}

	cards := make([]models.PaymentMethod, 0, len(saved))

	for _, method := range saved {
		if method.Type.IsCard() {
			cards = append(cards, method)
		}
	}

	selected := false

	if len(cards) > 0 {
		fmt.Fprintln(s.out, "saved cards:")

		for i, method := range cards {
			fmt.Fprintf(s.out, "  [%d] %s (%s, %02d/%d)\n", i+1, payment.MaskLastFour(method.LastFour), method.Type, method.ExpMonth, method.ExpYear)
		}

		if choice := s.promptInt("pick a saved card (0 for new)"); choice >= 1 && choice <= len(cards) {
			form.SelectPaymentMethod(cards[choice-1])

			selected = true
		}
	}

	if !selected {
		form.SetCardNumber(s.prompt("card number (16 digits)"))
		form.SetExpMonth(s.promptInt("expiry month"))
		form.SetExpYear(s.promptInt("expiry year"))
	}

	// CVV is always freshly entered, saved card or not.
	form.SetCVV(s.prompt("cvv"))
}

func (s *session) applyGiftCard(ctx context.Context, form *checkout.Form, subtotal decimal.Decimal) {

	code := s.prompt("gift card code (blank for none)")
	if code == "" {
		return
	}

	card, err := s.api.GiftCardByCode(ctx, code)
	if s.fail(err) {
		return
	}

	requested, err := decimal.NewFromString(s.prompt("amount to redeem"))
	if err != nil {
		fmt.Fprintln(s.out, "amount must be a number")

		return
	}

	redeemed := form.ApplyGiftCard(*card, requested, subtotal)
	fmt.Fprintf(s.out, "redeeming %s from gift card %s\n", catalog.FormatPrice(redeemed), card.Code)
}

func (s *session) printFormErrors(errs checkout.FieldErrors) {
	if banner, ok := errs[checkout.GeneralKey]; ok {
		fmt.Fprintf(s.out, "order failed: %s\n", banner)
	}

	for field, message := range errs {
		if field == checkout.GeneralKey {
			continue
		}

		fmt.Fprintf(s.out, "  %s: %s\n", field, message)
	}
}

func (s *session) orders(ctx context.Context, args []string) {
	page := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			page = n
		}
	}

	orders, total, err := s.api.ListOrders(ctx, page, 10)
	if s.fail(err) {
		return
	}

	for _, order := range orders {
		fmt.Fprintf(s.out, "%-12s %-10s %10s  %s\n", order.ID, order.Status, catalog.FormatPrice(order.TotalAmount), order.CreatedAt.Format("2006-01-02"))
	}

	fmt.Fprintf(s.out, "page %d - %d orders total\n", page, total)
}

func (s *session) order(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: order <id>")

		return
	}

	order, err := s.api.GetOrder(ctx, args[0])
	if s.fail(err) {
		return
	}

	fmt.Fprintf(s.out, "order %s - %s - %s\n", order.ID, order.Status, catalog.FormatPrice(order.TotalAmount))

	for _, line := range order.Products {
		fmt.Fprintf(s.out, "  %s x%d @ %s\n", line.ProductID, line.Quantity, catalog.FormatPrice(line.Price))
	}
}

func (s *session) notifications(ctx context.Context) {
	notifications, err := s.api.ListNotifications(ctx)
	if s.fail(err) {
		return
	}

	if len(notifications) == 0 {
		fmt.Fprintln(s.out, "no notifications")

		return
	}

	for _, n := range notifications {
		marker := "•"
		if n.ReadAt != nil {
			marker = " "
		}

		fmt.Fprintf(s.out, "%s %s - %s\n", marker, n.Subject, n.CreatedAt.Format("2006-01-02"))
	}
}

func (s *session) registries(ctx context.Context) {
	registries, err := s.api.ListRegistries(ctx)
	if s.fail(err) {
		return
	}

	if len(registries) == 0 {
		fmt.Fprintln(s.out, "no registries")

		return
	}

	for _, registry := range registries {
		fmt.Fprintf(s.out, "%-12s %-30s %d items\n", registry.ID, registry.Name, len(registry.Items))
	}
}

func (s *session) adminCommand(ctx context.Context, args []string) {
	if len(args) == 3 && args[0] == "status" {

		order, err := s.admin.UpdateOrderStatus(ctx, args[1], models.OrderStatus(args[2]))
		if s.fail(err) {
			return
		}

		fmt.Fprintf(s.out, "order %s is now %s\n", order.ID, order.Status)

		return
	}

	fmt.Fprintln(s.out, "usage: admin status <orderId> <pending|confirmed|shipped|delivered|cancelled>")
}
