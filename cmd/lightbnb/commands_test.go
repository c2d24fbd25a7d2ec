package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lightbnb/lightbnb/data"
	"github.com/lightbnb/lightbnb/internal/jsonlog"
	"github.com/lightbnb/lightbnb/service"
)

type stubService struct {
	criteria data.SearchCriteria
	limit    int
	guestID  int64
	email    string
	property *data.Property
	photos   []service.Photo
	err      error
}

func (s *stubService) RegisterUser(name, email, password string) (*data.User, error) {
	return &data.User{ID: 1, Name: name, Email: email}, s.err
}

func (s *stubService) ShowUser(userID int64) (*data.User, error) {
	return &data.User{ID: userID}, s.err
}

func (s *stubService) ShowUserByEmail(email string) (*data.User, error) {
	s.email = email
	if s.err != nil {
		return nil, s.err
	}
	return &data.User{ID: 2, Email: email}, nil
}

func (s *stubService) ListReservations(guestID int64, limit int) ([]*data.Reservation, error) {
	s.guestID, s.limit = guestID, limit
	return []*data.Reservation{}, s.err
}

func (s *stubService) ListProperties(criteria data.SearchCriteria, limit int) ([]*data.Listing, error) {
	s.criteria, s.limit = criteria, limit
	return []*data.Listing{{Property: data.Property{ID: 1, City: "Vancouver"}, AverageRating: 4.5}}, s.err
}

func (s *stubService) AddProperty(property *data.Property, photos ...service.Photo) error {
	property.ID = 7
	s.property, s.photos = property, photos
	return s.err
}

func (s *stubService) ImportProperties(ctx context.Context, r io.Reader) (int, error) {
	return 3, s.err
}

func (s *stubService) Wait() {}

func newTestApp(svc service.Service) (*app, *bytes.Buffer) {
	var out bytes.Buffer
	return &app{
		logger:  jsonlog.New(io.Discard, jsonlog.LevelOff),
		service: svc,
		out:     &out,
	}, &out
}

func TestListPropertiesCommand(t *testing.T) {
	t.Run("All filters", func(t *testing.T) {
		svc := &stubService{}
		a, out := newTestApp(svc)
		err := a.dispatch([]string{"properties", "-city", "Vancouver", "-min-price", "100", "-max-price", "500", "-min-rating", "4", "-limit", "5"})
		if err != nil {
			t.Fatal(err)
		}
		c := svc.criteria
		if c.City != "Vancouver" || *c.MinimumPricePerNight != 100 || *c.MaximumPricePerNight != 500 || *c.MinimumRating != 4 {
			t.Errorf("unexpected criteria %+v", c)
		}
		if svc.limit != 5 {
			t.Errorf("expected limit 5; got %d", svc.limit)
		}
		var body struct {
			Properties []data.Listing `json:"properties"`
		}
		if err := json.Unmarshal(out.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if len(body.Properties) != 1 || body.Properties[0].AverageRating != 4.5 || body.Properties[0].City != "Vancouver" {
			t.Errorf("unexpected output %s", out.String())
		}
	})

	t.Run("Absent filters stay nil", func(t *testing.T) {
		svc := &stubService{}
		a, _ := newTestApp(svc)
		if err := a.dispatch([]string{"properties", "-max-price", "0"}); err != nil {
			t.Fatal(err)
		}
		c := svc.criteria
		if c.MinimumPricePerNight != nil || c.MinimumRating != nil {
			t.Errorf("expected absent filters to be nil; got %+v", c)
		}
		if c.MaximumPricePerNight == nil || *c.MaximumPricePerNight != 0 {
			t.Errorf("expected an explicit zero maximum price; got %+v", c.MaximumPricePerNight)
		}
		if svc.limit != data.DefaultLimit {
			t.Errorf("expected the default limit; got %d", svc.limit)
		}
	})

	t.Run("Malformed number", func(t *testing.T) {
		a, _ := newTestApp(&stubService{})
		if err := a.dispatch([]string{"properties", "-min-price", "cheap"}); err == nil {
			t.Error("expected an error for a malformed price")
		}
	})
}

func TestShowUserCommand(t *testing.T) {
	t.Run("By email", func(t *testing.T) {
		svc := &stubService{}
		a, out := newTestApp(svc)
		if err := a.dispatch([]string{"user", "-email", "alice@example.com"}); err != nil {
			t.Fatal(err)
		}
		if svc.email != "alice@example.com" {
			t.Errorf("expected lookup by email; got %q", svc.email)
		}
		if !bytes.Contains(out.Bytes(), []byte(`"email": "alice@example.com"`)) {
			t.Errorf("unexpected output %s", out.String())
		}
	})

	t.Run("Not found", func(t *testing.T) {
		a, _ := newTestApp(&stubService{err: service.ErrRecordNotFound})
		err := a.dispatch([]string{"user", "-email", "nobody@example.com"})
		if !errors.Is(err, service.ErrRecordNotFound) {
			t.Errorf("expected %v; got %v", service.ErrRecordNotFound, err)
		}
	})

	t.Run("Missing flags", func(t *testing.T) {
		a, _ := newTestApp(&stubService{})
		if err := a.dispatch([]string{"user"}); !errors.Is(err, errUsage) {
			t.Errorf("expected %v; got %v", errUsage, err)
		}
	})
}

func TestListReservationsCommand(t *testing.T) {
	svc := &stubService{}
	a, out := newTestApp(svc)
	if err := a.dispatch([]string{"reservations", "-guest", "3"}); err != nil {
		t.Fatal(err)
	}
	if svc.guestID != 3 || svc.limit != data.DefaultLimit {
		t.Errorf("unexpected guest %d and limit %d", svc.guestID, svc.limit)
	}
	if !bytes.Contains(out.Bytes(), []byte(`"reservations": []`)) {
		t.Errorf("expected an empty reservations list; got %s", out.String())
	}
}

func TestAddPropertyCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "property.yml")
	content := []byte("owner_id: 1\ntitle: Speed lamp\ncost_per_night: 93061\ncity: Sotboske\n")
	if err := os.WriteFile(file, content, 0o600); err != nil {
		t.Fatal(err)
	}
	photo := filepath.Join(dir, "thumb.png")
	if err := os.WriteFile(photo, []byte("\x89PNG\r\n\x1a\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	svc := &stubService{}
	a, out := newTestApp(svc)
	if err := a.dispatch([]string{"add-property", "-file", file, "-thumbnail", photo}); err != nil {
		t.Fatal(err)
	}
	if svc.property.Title != "Speed lamp" || svc.property.CostPerNight != 93061 {
		t.Errorf("unexpected property %+v", svc.property)
	}
	if len(svc.photos) != 1 || svc.photos[0].Scope != service.PhotoThumbnail {
		t.Errorf("unexpected photos %+v", svc.photos)
	}
	if !bytes.Contains(out.Bytes(), []byte(`"id": 7`)) {
		t.Errorf("expected the assigned ID in the output; got %s", out.String())
	}

	unknown := filepath.Join(dir, "unknown.yml")
	if err := os.WriteFile(unknown, []byte("owner: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := a.dispatch([]string{"add-property", "-file", unknown}); err == nil {
		t.Error("expected an error for an unknown field")
	}
}

func TestUnknownCommand(t *testing.T) {
	a, _ := newTestApp(&stubService{})
	if err := a.dispatch([]string{"serve"}); !errors.Is(err, errUsage) {
		t.Errorf("expected %v; got %v", errUsage, err)
	}
	if err := a.dispatch(nil); !errors.Is(err, errUsage) {
		t.Errorf("expected %v; got %v", errUsage, err)
	}
}
