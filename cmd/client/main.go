// Package main runs the commodities manager shell: a terminal front end
// over the session, catalog, and view layers. The shell holds no domain
// logic; every action goes through the capability gate and the catalog.
package main

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/sumith1510/commodities-manager/internal/auth"
	"github.com/sumith1510/commodities-manager/internal/catalog"
	"github.com/sumith1510/commodities-manager/internal/config"
	"github.com/sumith1510/commodities-manager/internal/logger"
	"github.com/sumith1510/commodities-manager/internal/models"
	"github.com/sumith1510/commodities-manager/internal/policy"
	"github.com/sumith1510/commodities-manager/internal/storage"
	"github.com/sumith1510/commodities-manager/internal/theme"
	"github.com/sumith1510/commodities-manager/internal/view"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// shell bundles the core components and the current table state.
type shell struct {
	sessions *auth.SessionManager
	catalog  *catalog.Catalog
	themes   *theme.Manager
	scanner  *bufio.Scanner

	query string
	spec  view.SortSpec
}

func main() {
	options := config.Parse()

	fmt.Printf("Commodities Manager\nBuild version: %s\nBuild date: %s\n",
		cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	store, err := storage.New(options.DataDir, log.Log)
	if err != nil {
		log.Log.Fatal("cannot open record store", zap.Error(err))
	}

	s := &shell{
		sessions: auth.NewSessionManager(auth.DefaultCredentials(), auth.PlainVerifier{}, store, log.Log),
		catalog:  catalog.Open(store, log.Log),
		themes:   theme.NewManager(store, log.Log),
		scanner:  bufio.NewScanner(os.Stdin),
		spec:     view.SortSpec{Key: view.SortByName},
	}
	s.run()
}

// run alternates between the login prompt and the command loop until the
// input stream ends or the user exits.
func (s *shell) run() {
	fmt.Printf("Theme: %s\n", s.themes.Current())

	for {
		session := s.sessions.Current()
		if session == nil {
			session = s.sessions.Restore()
		}
		if session == nil {
			session = s.promptLogin()
			if session == nil {
				return // stdin closed
			}
		}

		fmt.Printf("Signed in as %s (%s)\n", session.Name, session.Role)
		s.printMenu(session.Role)
		if !s.repl(session) {
			return
		}
	}
}

// repl processes commands for the signed-in user. It returns false when
// the shell should exit, true after a logout (back to the login prompt).
func (s *shell) repl(session *models.Session) bool {
	for {
		fmt.Print("commodities> ")
		if !s.scanner.Scan() {
			return false
		}
		args := strings.Fields(strings.TrimSpace(s.scanner.Text()))
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			s.printMenu(session.Role)
		case "dashboard":
			if !policy.Can(session.Role, models.ViewDashboard) {
				fmt.Println("Only managers can view the dashboard.")
				continue
			}
			s.renderDashboard()
		case "list":
			if !policy.Can(session.Role, models.ViewCatalog) {
				fmt.Println("Not permitted.")
				continue
			}
			s.query = strings.Join(args[1:], " ")
			s.renderTable()
		case "sort":
			if len(args) < 2 || !view.SortKey(args[1]).Valid() {
				fmt.Println("Usage: sort name|category|price|stock|unit")
				continue
			}
			s.spec = s.spec.Toggle(view.SortKey(args[1]))
			s.renderTable()
		case "add":
			s.addProduct(session.Role)
		case "edit":
			if len(args) < 2 {
				fmt.Println("Usage: edit <id>")
				continue
			}
			s.editProduct(session.Role, args[1])
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			if err := s.catalog.Delete(session.Role, args[1]); err != nil {
				fmt.Println(describe(err))
			} else {
				fmt.Println("Product deleted")
			}
		case "theme":
			fmt.Printf("Theme: %s\n", s.themes.Toggle())
		case "whoami":
			fmt.Printf("%s — %s (%s)\n", session.Username, session.Name, session.Role)
		case "logout":
			s.sessions.Logout()
			fmt.Println("Signed out")
			return true
		case "exit":
			return false
		default:
			fmt.Printf("Unknown command %q, try help\n", args[0])
		}
	}
}

// addProduct prompts for a full draft and submits it.
func (s *shell) addProduct(role models.Role) {
	if !policy.Can(role, models.MutateCatalog) {
		fmt.Println("Not permitted.")
		return
	}
	draft := s.promptDraft()
	product, err := s.catalog.Add(role, draft)
	if err != nil {
		fmt.Println(describe(err))
		return
	}
	fmt.Printf("Added %s (%s)\n", product.Name, product.ID)
}

// editProduct prompts for the fields to change and submits the patch.
func (s *shell) editProduct(role models.Role, id string) {
	if !policy.Can(role, models.MutateCatalog) {
		fmt.Println("Not permitted.")
		return
	}
	patch := s.promptPatch()
	product, err := s.catalog.Update(role, id, patch)
	if err != nil {
		fmt.Println(describe(err))
		return
	}
	fmt.Printf("Updated %s\n", product.Name)
}

// describe turns a core error into the form-level message shown to the user.
func describe(err error) string {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Reason
	case errors.Is(err, catalog.ErrNotFound):
		return "Product no longer exists; refresh the list."
	case errors.Is(err, policy.ErrForbidden):
		return "Not permitted."
	default:
		return err.Error()
	}
}
