package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/lightbnb/lightbnb/data"
	"github.com/lightbnb/lightbnb/internal/validator"
	"gopkg.in/yaml.v3"
)

// Photo scopes.
const (
	PhotoThumbnail = "thumbnail"
	PhotoCover     = "cover"
)

var supportedPhotoTypes = []string{"image/jpeg", "image/png", "image/webp"}

// Photo is an image to be stored with a new property.
type Photo struct {
	Scope string
	Data  []byte
}

type properties interface {
	ListProperties(criteria data.SearchCriteria, limit int) ([]*data.Listing, error)
	AddProperty(property *data.Property, photos ...Photo) error
	ImportProperties(ctx context.Context, r io.Reader) (int, error)
}

// ListProperties service lists the listings matching the search criteria,
// cheapest first. Results are served from the listing cache when present.
func (s *service) ListProperties(criteria data.SearchCriteria, limit int) ([]*data.Listing, error) {
	v := validator.New()
	data.ValidateSearchCriteria(v, criteria)
	if data.ValidateLimit(v, limit); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	if limit == 0 {
		limit = data.DefaultLimit
	}
	key := criteria.Key() + "&limit=" + strconv.Itoa(limit)
	if item := s.cache.Get(key); item != nil {
		return item.Value(), nil
	}
	listings, err := s.repo.GetAllProperties(criteria, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, listings, ttlcache.DefaultTTL)
	return listings, nil
}

// AddProperty service validates and stores a new property, uploading its photos
// first. The listing cache is purged once the property is stored. When the insert
// fails the photo URLs on property are restored; uploaded objects stay in the bucket.
func (s *service) AddProperty(property *data.Property, photos ...Photo) error {
	v := validator.New()
	for _, photo := range photos {
		v.Check(validator.In(photo.Scope, PhotoThumbnail, PhotoCover), "photo", "must be a thumbnail or a cover")
	}
	if data.ValidateProperty(v, property); !v.Valid() {
		return s.failedValidation(v.Errors)
	}
	thumbnail, cover := property.ThumbnailPhotoURL, property.CoverPhotoURL
	for _, photo := range photos {
		url, err := s.uploadPhoto(photo)
		if err != nil {
			return err
		}
		switch photo.Scope {
		case PhotoThumbnail:
			property.ThumbnailPhotoURL = url
		case PhotoCover:
			property.CoverPhotoURL = url
		}
	}
	err := s.repo.AddProperty(property)
	if err != nil {
		property.ThumbnailPhotoURL, property.CoverPhotoURL = thumbnail, cover
		return err
	}
	s.cache.DeleteAll()
	return nil
}

// ImportProperties service adds the properties listed in a YAML document of the form
//
//	properties:
//	  - owner_id: 1
//	    title: Speed lamp
//	    ...
//
// Inserts are paced by the import rate limiter. It returns the number of
// properties added before the first failure.
func (s *service) ImportProperties(ctx context.Context, r io.Reader) (int, error) {
	var document struct {
		Properties []data.Property `yaml:"properties"`
	}
	err := yaml.NewDecoder(r).Decode(&document)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("decode properties: %w", err)
	}
	for i := range document.Properties {
		err = s.limiter.Wait(ctx)
		if err != nil {
			return i, err
		}
		err = s.AddProperty(&document.Properties[i])
		if err != nil {
			return i, fmt.Errorf("property %d: %w", i+1, err)
		}
	}
	return len(document.Properties), nil
}

// uploadPhoto stores a photo and returns its public URL.
func (s *service) uploadPhoto(photo Photo) (string, error) {
	if s.photos == nil {
		return "", ErrPhotoStoreDisabled
	}
	mtype := mimetype.Detect(photo.Data)
	if !validator.Mime(mtype, supportedPhotoTypes...) {
		return "", ErrUnsupportedMediaType
	}
	key := "properties/" + photo.Scope + "/" + uuid.NewString() + mtype.Extension()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.photos.Upload(ctx, key, photo.Data, mtype.String())
}
