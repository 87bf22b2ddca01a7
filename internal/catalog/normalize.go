package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"logogrip/internal/domain"
)

// Rejection describes a manifest record that was dropped
type Rejection struct {
	Index  int
	Name   string
	Slug   string
	Reason string
}

func (r Rejection) String() string {
	return fmt.Sprintf("record %d (%q): %s", r.Index, r.Name, r.Reason)
}

// Normalizer validates and cleans decoded manifest records
type Normalizer struct {
	validate *validator.Validate
	logger   *zap.Logger
}

// NewNormalizer creates a normalizer with the slug rule registered
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := registerSlugRule(v); err != nil {
		panic(fmt.Sprintf("catalog: registering slug rule: %v", err))
	}

	return &Normalizer{validate: v, logger: logger.Named("catalog")}
}

// registerSlugRule adds the "slug" tag used by domain.Entity
func registerSlugRule(v *validator.Validate) error {
	return v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return ValidSlug(fl.Field().String())
	})
}

// Normalize trims names, derives missing slugs, fills in the placeholder
// image and drops records that are still invalid or whose slug repeats an
// earlier record. It never fails; dropped records are returned.
func (n *Normalizer) Normalize(raw []domain.Entity) ([]domain.Entity, []Rejection) {
	out := make([]domain.Entity, 0, len(raw))
	var rejected []Rejection
	seen := make(map[string]int, len(raw))

	for i, e := range raw {
		e.Name = strings.Join(strings.Fields(e.Name), " ")
		e.Slug = strings.TrimSpace(e.Slug)
		if e.Slug == "" {
			e.Slug = Slugify(e.Name)
		}

		e.Image.Path = strings.TrimSpace(e.Image.AssetPath())
		e.Image.URL = ""
		e.Image.Source = strings.TrimSpace(e.Image.Source)
		if e.Image.Path == "" {
			e.Image.Path = domain.PlaceholderImagePath
		}

		if err := n.validate.Struct(e); err != nil {
			r := Rejection{Index: i, Name: e.Name, Slug: e.Slug, Reason: describe(err)}
			n.logger.Warn("dropping invalid manifest record", zap.Stringer("record", r))
			rejected = append(rejected, r)
			continue
		}

		if first, dup := seen[e.Slug]; dup {
			r := Rejection{Index: i, Name: e.Name, Slug: e.Slug,
				Reason: fmt.Sprintf("duplicate slug %q (first used by record %d)", e.Slug, first)}
			n.logger.Warn("dropping duplicate manifest record", zap.Stringer("record", r))
			rejected = append(rejected, r)
			continue
		}
		seen[e.Slug] = i
		out = append(out, e)
	}

	return out, rejected
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "slug":
			parts = append(parts, fmt.Sprintf("%s %q is not a valid slug", fe.Field(), fe.Value()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
