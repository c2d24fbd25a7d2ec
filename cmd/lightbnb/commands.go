package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lightbnb/lightbnb/data"
	"github.com/lightbnb/lightbnb/service"
)

var errUsage = errors.New("invalid usage")

// dispatch runs the command named by args[0] with the remaining arguments.
func (a *app) dispatch(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	commands := map[string]func([]string) error{
		"user":         a.showUserCommand,
		"register":     a.registerUserCommand,
		"reservations": a.listReservationsCommand,
		"properties":   a.listPropertiesCommand,
		"add-property": a.addPropertyCommand,
		"import":       a.importPropertiesCommand,
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd(args[1:])
}

func (a *app) showUserCommand(args []string) error {
	fs := newFlagSet("user")
	id := fs.Int64("id", 0, "User ID")
	email := fs.String("email", "", "User email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var user *data.User
	var err error
	switch {
	case *email != "":
		user, err = a.service.ShowUserByEmail(*email)
	case *id > 0:
		user, err = a.service.ShowUser(*id)
	default:
		return fmt.Errorf("%w: user needs -id or -email", errUsage)
	}
	if err != nil {
		return err
	}
	return a.writeJSON(envelope{"user": user})
}

func (a *app) registerUserCommand(args []string) error {
	fs := newFlagSet("register")
	name := fs.String("name", "", "User name")
	email := fs.String("email", "", "User email")
	password := fs.String("password", "", "User password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := a.service.RegisterUser(*name, *email, *password)
	if err != nil {
		return err
	}
	return a.writeJSON(envelope{"user": user})
}

func (a *app) listReservationsCommand(args []string) error {
	fs := newFlagSet("reservations")
	guestID := fs.Int64("guest", 0, "Guest user ID")
	limit := fs.Int("limit", data.DefaultLimit, "Maximum number of reservations")
	if err := fs.Parse(args); err != nil {
		return err
	}
	reservations, err := a.service.ListReservations(*guestID, *limit)
	if err != nil {
		return err
	}
	return a.writeJSON(envelope{"reservations": reservations})
}

func (a *app) listPropertiesCommand(args []string) error {
	fs := newFlagSet("properties")
	var criteria data.SearchCriteria
	fs.StringVar(&criteria.City, "city", "", "City name, matched as a substring")
	fs.Func("min-price", "Minimum cost per night", int64Flag(&criteria.MinimumPricePerNight))
	fs.Func("max-price", "Maximum cost per night", int64Flag(&criteria.MaximumPricePerNight))
	fs.Func("min-rating", "Minimum average rating", float64Flag(&criteria.MinimumRating))
	limit := fs.Int("limit", data.DefaultLimit, "Maximum number of listings")
	if err := fs.Parse(args); err != nil {
		return err
	}
	listings, err := a.service.ListProperties(criteria, *limit)
	if err != nil {
		return err
	}
	return a.writeJSON(envelope{"properties": listings})
}

func (a *app) addPropertyCommand(args []string) error {
	fs := newFlagSet("add-property")
	file := fs.String("file", "-", "YAML property file, - for stdin")
	thumbnail := fs.String("thumbnail", "", "Thumbnail photo file")
	cover := fs.String("cover", "", "Cover photo file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var property data.Property
	err := a.readYAML(*file, &property)
	if err != nil {
		return err
	}
	var photos []service.Photo
	for scope, path := range map[string]string{service.PhotoThumbnail: *thumbnail, service.PhotoCover: *cover} {
		if path == "" {
			continue
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		photos = append(photos, service.Photo{Scope: scope, Data: b})
	}
	err = a.service.AddProperty(&property, photos...)
	if err != nil {
		return err
	}
	return a.writeJSON(envelope{"property": property})
}

func (a *app) importPropertiesCommand(args []string) error {
	fs := newFlagSet("import")
	file := fs.String("file", "-", "YAML document with a properties list, - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	r, err := a.open(*file)
	if err != nil {
		return err
	}
	defer r.Close()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	n, err := a.service.ImportProperties(ctx, r)
	a.logger.PrintInfo("imported properties", map[string]string{"count": fmt.Sprint(n), "file": *file})
	if err != nil {
		return err
	}
	return a.writeJSON(envelope{"imported": n})
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
