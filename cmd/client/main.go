// Command client is a terminal front end for the product catalog. It keeps
// the same view model a browser client would: a mirrored product list and a
// form that is either creating a new product or editing a selected one.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"product-catalog/internal/client"
	"product-catalog/internal/logger"
	"product-catalog/internal/model"
	"product-catalog/internal/view"

	"github.com/joho/godotenv"
)

func main() {
	log := logger.Instance()

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}

	baseURL := os.Getenv("SERVER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	api := client.NewProductAPI(baseURL, 5*time.Second)
	state := view.NewState()
	ctx := context.Background()

	products, err := api.List(ctx)
	if err != nil {
		log.Error("Initial load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	state.Load(products)

	fmt.Printf("Connected to %s, %d products.\n", baseURL, len(state.Products))
	fmt.Println("Commands: list | add | edit <n> | delete <n> | cancel | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt(state)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, arg, _ := strings.Cut(line, " ")
		switch cmd {
		case "quit", "exit":
			return
		case "list":
			printProducts(state)
		case "add":
			readForm(scanner, state)
			submit(ctx, api, state)
		case "edit":
			p, ok := pick(state, arg)
			if !ok {
				fmt.Println("no such product")
				continue
			}
			state.BeginEdit(p.ID.Hex())
			readForm(scanner, state)
			submit(ctx, api, state)
		case "cancel":
			state.CancelEdit()
		case "delete":
			p, ok := pick(state, arg)
			if !ok {
				fmt.Println("no such product")
				continue
			}
			id := p.ID.Hex()
			deleted, err := api.Delete(ctx, id)
			if err != nil {
				fail(state, err)
				continue
			}
			state.Removed(id)
			fmt.Printf("deleted %q\n", deleted.Name)
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func prompt(state *view.State) {
	if state.Mode() == view.ModeEdit {
		fmt.Print("(edit)> ")
	} else {
		fmt.Print("> ")
	}
}

func printProducts(state *view.State) {
	if len(state.Products) == 0 {
		fmt.Println("catalog is empty")
		return
	}
	for i, p := range state.Products {
		fmt.Printf("%3d. %-30s %10.2f  %s\n", i+1, p.Name, p.Price, p.Description)
	}
}

// pick resolves a 1-based list position to a product.
func pick(state *view.State, arg string) (*model.Product, bool) {
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil || n < 1 || n > len(state.Products) {
		return nil, false
	}
	return &state.Products[n-1], true
}

// readForm fills the form fields, keeping existing values when the user
// enters nothing in edit mode.
func readForm(scanner *bufio.Scanner, state *view.State) {
	state.Form.Name = ask(scanner, "name", state.Form.Name)
	state.Form.Price = ask(scanner, "price", state.Form.Price)
	state.Form.Description = ask(scanner, "description", state.Form.Description)
}

func ask(scanner *bufio.Scanner, field, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", field, current)
	} else {
		fmt.Printf("%s: ", field)
	}
	if !scanner.Scan() {
		return current
	}
	if entered := strings.TrimSpace(scanner.Text()); entered != "" {
		return entered
	}
	return current
}

func submit(ctx context.Context, api *client.ProductAPI, state *view.State) {
	in := state.Form.Input()
	if state.Mode() == view.ModeEdit {
		updated, err := api.Update(ctx, state.EditingID(), in)
		if err != nil {
			fail(state, err)
			return
		}
		state.Updated(*updated)
		fmt.Printf("updated %q\n", updated.Name)
		return
	}

	created, err := api.Create(ctx, in)
	if err != nil {
		fail(state, err)
		return
	}
	state.Created(*created)
	fmt.Printf("created %q\n", created.Name)
}

// fail surfaces the error and leaves the form intact for correction.
func fail(state *view.State, err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		state.Fail(apiErr.Message)
		fmt.Println("rejected:", apiErr.Message)
		return
	}
	state.Fail(err.Error())
	fmt.Println("request failed:", err)
}
