package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"lightbnb/internal/model"
	"lightbnb/internal/seed"
)

var errNoUser = errors.New("no matching user")

// withApp wires the application for the duration of fn.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lightbnb",
		Short:         "Query and seed the LightBnB database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newUsersCmd(),
		newLoginCmd(),
		newWhoamiCmd(),
		newReservationsCmd(),
		newPropertiesCmd(),
		newSeedCmd(),
	)
	return root
}

func newUsersCmd() *cobra.Command {
	users := &cobra.Command{Use: "users", Short: "Look up and create users"}

	var (
		email string
		id    int
	)
	get := &cobra.Command{
		Use:   "get",
		Short: "Print a user by --email or --id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (email == "") == (id == 0) {
				return errors.New("exactly one of --email or --id is required")
			}
			return withApp(cmd, func(a *app) error {
				var (
					u   *model.User
					err error
				)
				if email != "" {
					u, err = a.store.GetUserWithEmail(cmd.Context(), strings.ToLower(email))
				} else {
					u, err = a.store.GetUserWithID(cmd.Context(), id)
				}
				if err != nil {
					return err
				}
				if u == nil {
					return errNoUser
				}
				return writeJSON(cmd.OutOrStdout(), u)
			})
		},
	}
	get.Flags().StringVar(&email, "email", "", "user email")
	get.Flags().IntVar(&id, "id", 0, "user id")

	var name, newEmail, password string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a user with a hashed password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				u, err := a.auth.SignUp(cmd.Context(), name, newEmail, password)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), u)
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "display name")
	add.Flags().StringVar(&newEmail, "email", "", "email address")
	add.Flags().StringVar(&password, "password", "", "plain text password")
	for _, f := range []string{"name", "email", "password"} {
		_ = add.MarkFlagRequired(f)
	}

	users.AddCommand(get, add)
	return users
}

type session struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and print a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				u, err := a.auth.Login(cmd.Context(), email, password)
				if err != nil {
					return err
				}
				token, err := a.auth.IssueSessionToken(u)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), session{User: u, Token: token})
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "plain text password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Print the user a session token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				u, err := a.auth.RestoreSession(cmd.Context(), token)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), u)
			})
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "session token from login")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func newReservationsCmd() *cobra.Command {
	var guest, limit int
	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "List past reservations of a guest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				listings, err := a.store.GetAllReservations(cmd.Context(), guest, limit)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), listings)
			})
		},
	}
	cmd.Flags().IntVar(&guest, "guest", 0, "guest user id")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows, 0 for the configured default")
	_ = cmd.MarkFlagRequired("guest")
	return cmd
}

func newPropertiesCmd() *cobra.Command {
	props := &cobra.Command{Use: "properties", Short: "Search and create properties"}

	var (
		opts               model.PropertySearch
		minPrice, maxPrice string
		limit              int
	)
	search := &cobra.Command{
		Use:   "search",
		Short: "List properties, cheapest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if minPrice != "" {
				if opts.MinimumPricePerNight, err = model.CentsFromDollars(minPrice); err != nil {
					return fmt.Errorf("--min-price: %w", err)
				}
			}
			if maxPrice != "" {
				if opts.MaximumPricePerNight, err = model.CentsFromDollars(maxPrice); err != nil {
					return fmt.Errorf("--max-price: %w", err)
				}
			}
			return withApp(cmd, func(a *app) error {
				listings, err := a.store.GetAllProperties(cmd.Context(), opts, limit)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), listings)
			})
		},
	}
	search.Flags().StringVar(&opts.City, "city", "", "case-insensitive substring of the city")
	search.Flags().IntVar(&opts.OwnerID, "owner", 0, "owner user id")
	search.Flags().StringVar(&minPrice, "min-price", "", "minimum nightly price in dollars")
	search.Flags().StringVar(&maxPrice, "max-price", "", "maximum nightly price in dollars")
	search.Flags().Float64Var(&opts.MinimumRating, "min-rating", 0, "minimum average rating")
	search.Flags().IntVar(&limit, "limit", 0, "maximum rows, 0 for the configured default")

	var file string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a property from a JSON document (cost_per_night in cents)",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProperty(cmd, file)
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				created, err := a.store.AddProperty(cmd.Context(), p)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), created)
			})
		},
	}
	add.Flags().StringVar(&file, "file", "-", "JSON file, - for stdin")

	props.AddCommand(search, add)
	return props
}

func readProperty(cmd *cobra.Command, file string) (*model.Property, error) {
	var r io.Reader = cmd.InOrStdin()
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	p := &model.Property{}
	if err := json.NewDecoder(r).Decode(p); err != nil {
		return nil, fmt.Errorf("readProperty: %w", err)
	}
	if err := validator.New().Struct(p); err != nil {
		return nil, fmt.Errorf("readProperty: %w", err)
	}
	return p, nil
}

func newSeedCmd() *cobra.Command {
	var usersFile, propertiesFile string
	var workers int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import users and properties from JSON fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := loadFixture(usersFile, seed.LoadUsers)
			if err != nil {
				return err
			}
			props, err := loadFixture(propertiesFile, seed.LoadProperties)
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				res, err := seed.NewImporter(a.store, workers, a.log).Import(cmd.Context(), users, props)
				if werr := writeJSON(cmd.OutOrStdout(), res); werr != nil {
					return werr
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&usersFile, "users", "", "users fixture")
	cmd.Flags().StringVar(&propertiesFile, "properties", "", "properties fixture")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent inserts")
	_ = cmd.MarkFlagRequired("users")
	_ = cmd.MarkFlagRequired("properties")
	return cmd
}

func loadFixture[T any](path string, load func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return load(f)
}
