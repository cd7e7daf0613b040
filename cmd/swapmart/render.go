package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dkolesn/swapmart/internal/model"
)

// renderer prints results as aligned text, or pretty JSON with -json.
type renderer struct {
	json bool
}

func (r renderer) printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (r renderer) session(s model.Session) {
	if r.json {
		r.printJSON(map[string]any{"authenticated": s.Authenticated(), "user": s.User})
		return
	}
	if !s.Authenticated() {
		fmt.Println("not logged in")
		return
	}
	if s.User == nil {
		fmt.Println("logged in (profile not loaded; token restored from disk)")
		return
	}
	fmt.Printf("logged in as %s (#%d)\n", s.User.Username, s.User.ID)
	if s.User.Email != "" {
		fmt.Printf("email: %s\n", s.User.Email)
	}
}

func (r renderer) items(items []model.Item) {
	if r.json {
		r.printJSON(items)
		return
	}
	if len(items) == 0 {
		fmt.Println("no items found")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRICE\tLOCATION\tSTATUS\tCREATED")
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID,
			truncate(it.Title, 32),
			it.Category.Name,
			it.PriceEstimate,
			it.Location,
			it.Approval,
			it.CreatedAt.Format("2006-01-02"),
		)
	}
	_ = w.Flush()
}

func (r renderer) item(it *model.Item) {
	if it == nil {
		fmt.Println("item not found")
		return
	}
	if r.json {
		r.printJSON(it)
		return
	}
	fmt.Printf("#%d %s\n", it.ID, it.Title)
	fmt.Printf("owner: %s  category: %s  price: %s  location: %s  status: %s\n",
		it.Owner.Username, it.Category.Name, it.PriceEstimate, it.Location, it.Approval)
	if it.Description != "" {
		fmt.Println()
		fmt.Println(it.Description)
	}
	if len(it.Images) > 0 {
		fmt.Println()
		fmt.Println("images:")
		for _, u := range it.Images {
			fmt.Println("  " + u)
		}
	}
	fmt.Printf("\nlisted %s\n", it.CreatedAt.Format(time.RFC1123))
}

func (r renderer) categories(cats []model.Category) {
	if r.json {
		r.printJSON(cats)
		return
	}
	if len(cats) == 0 {
		fmt.Println("no categories")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, c := range cats {
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, truncate(c.Description, 60))
	}
	_ = w.Flush()
}

func (r renderer) category(c *model.Category) {
	if c == nil {
		fmt.Println("category not found")
		return
	}
	if r.json {
		r.printJSON(c)
		return
	}
	fmt.Printf("#%d %s\n", c.ID, c.Name)
	if c.Description != "" {
		fmt.Println(c.Description)
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
