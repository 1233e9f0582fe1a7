// Package view renders the register's HTML pages. Templates are full
// documents parsed from the templates directory and cached per name; set
// DEV=1 to re-parse on every request while editing them.
package view

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the helpers shared by every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(amount int) string { return fmt.Sprintf("₹%d", amount) },
		"mul":   func(a, b int) int { return a * b },
		"year":  func() int { return time.Now().Year() },
	}
}

// Render parses and executes a single template file with shared funcs.
// name is the filename, e.g. "cart.html".
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(detectBase)
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}

	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && t != nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			return t.Execute(w, data)
		}
	}

	t, err := template.New(name).Funcs(Funcs()).ParseFiles(filepath.Join(baseDir, name))
	if err != nil {
		return err
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.Execute(w, data)
}
