package main

import (
	"context"
	"fmt"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kbukum/storefront/cart"
	"github.com/kbukum/storefront/session"
)

type command struct {
	name string
	args int
	run  func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{}

func init() {
	for _, c := range []command{
		{name: "catalog", run: listCatalog},
		{name: "cart", run: showCart},
		{name: "total", run: showTotal},
		{name: "add", args: 1, run: addItem},
		{name: "remove", args: 1, run: removeItem},
		{name: "login", args: 1, run: login},
		{name: "logout", run: logout},
		{name: "whoami", run: whoami},
	} {
		commands[c.name] = c
	}
}

func (e *env) money(amount decimal.Decimal) string {
	unit, err := cart.ParseCurrency(e.cfg.Store.Currency)
	if err != nil {
		unit = cart.DefaultCurrency
	}
	return cart.FormatAmount(amount, unit)
}

func listCatalog(_ context.Context, e *env, _ []string) error {
	cat := e.store.Catalog()
	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tIN CART")
	for _, p := range cat.Products() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, e.money(p.Price), e.store.Quantity(p.ID))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "%d products (%s)\n", cat.Len(), cat.Source())
	return nil
}

func showCart(_ context.Context, e *env, _ []string) error {
	items := e.store.Cart()
	cat := e.store.Catalog()

	ids := make([]string, 0, len(items))
	for id, qty := range items {
		if qty > 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		fmt.Fprintln(e.stdout, "cart is empty")
		return nil
	}
	slices.Sort(ids)

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tLINE")
	for _, id := range ids {
		qty := items[id]
		p, ok := cat.Find(id)
		if !ok {
			fmt.Fprintf(tw, "%s\t(not in catalog)\t%d\t-\t-\n", id, qty)
			continue
		}
		line := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", id, p.Name, qty, e.money(p.Price), e.money(line))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "total %s\n", e.money(e.store.TotalCartAmount()))
	return nil
}

func showTotal(_ context.Context, e *env, _ []string) error {
	fmt.Fprintln(e.stdout, e.money(e.store.TotalCartAmount()))
	return nil
}

func addItem(ctx context.Context, e *env, args []string) error {
	err := e.store.AddToCart(ctx, args[0])
	fmt.Fprintf(e.stdout, "%s x%d\n", args[0], e.store.Quantity(args[0]))
	return err
}

func removeItem(ctx context.Context, e *env, args []string) error {
	err := e.store.RemoveFromCart(ctx, args[0])
	fmt.Fprintf(e.stdout, "%s x%d\n", args[0], e.store.Quantity(args[0]))
	return err
}

// login keeps the token only after the backend accepted it.
func login(ctx context.Context, e *env, args []string) error {
	if err := e.store.LoadCart(ctx, args[0]); err != nil {
		return err
	}
	if err := e.store.SetToken(ctx, args[0]); err != nil {
		_ = e.store.Logout(ctx)
		return err
	}
	fmt.Fprintf(e.stdout, "signed in, %d item(s) in cart\n", e.store.ItemCount())
	return nil
}

func logout(ctx context.Context, e *env, _ []string) error {
	if err := e.store.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, "signed out")
	return nil
}

func whoami(_ context.Context, e *env, _ []string) error {
	token := e.store.Token()
	if token == "" {
		fmt.Fprintln(e.stdout, "not signed in")
		return nil
	}
	claims, err := session.Inspect(token)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "user %s\n", claims.UserID())
	if claims.ExpiresAt != nil {
		state := "valid"
		if claims.Expired(time.Now()) {
			state = "expired"
		}
		fmt.Fprintf(e.stdout, "expires %s (%s)\n", claims.ExpiresAt.UTC().Format(time.RFC3339), state)
	}
	return nil
}
