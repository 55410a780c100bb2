package workspace

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nhle/photodesk/internal/apperr"
	"github.com/nhle/photodesk/internal/model"
)

type nameInput struct {
	Name string `validate:"required"`
}

type serviceInput struct {
	Name  string `validate:"required"`
	Price *int   `validate:"omitempty,min=0"`
}

// AddPhotographer appends name to the roster. Surrounding whitespace is
// trimmed; the trimmed name is then compared exactly, case included.
func (w *Workspace) AddPhotographer(name string) (model.Photographer, error) {
	name = strings.TrimSpace(name)
	if err := w.check("adding photographer", nameInput{Name: name}); err != nil {
		return model.Photographer{}, err
	}
	if slices.ContainsFunc(w.data.Photographers, func(p model.Photographer) bool { return p.Name == name }) {
		return model.Photographer{}, fmt.Errorf("adding photographer %q: %w", name, apperr.ErrDuplicate)
	}

	p := model.Photographer{Name: name}
	w.data.Photographers = append(w.data.Photographers, p)
	return p, nil
}

// RemovePhotographer removes the roster entry at index and returns it.
func (w *Workspace) RemovePhotographer(index int) (model.Photographer, error) {
	if index < 0 || index >= len(w.data.Photographers) {
		return model.Photographer{}, fmt.Errorf("removing photographer %d: %w", index, apperr.ErrOutOfRange)
	}
	p := w.data.Photographers[index]
	w.data.Photographers = slices.Delete(w.data.Photographers, index, index+1)
	return p, nil
}

// AddService appends a price-list entry. price may be nil. Names are
// trimmed and compared like AddPhotographer.
func (w *Workspace) AddService(name string, price *int) (model.Service, error) {
	name = strings.TrimSpace(name)
	if err := w.check("adding service", serviceInput{Name: name, Price: price}); err != nil {
		return model.Service{}, err
	}
	if slices.ContainsFunc(w.data.Services, func(s model.Service) bool { return s.Name == name }) {
		return model.Service{}, fmt.Errorf("adding service %q: %w", name, apperr.ErrDuplicate)
	}

	s := model.Service{Name: name}
	if price != nil {
		v := *price
		s.Price = &v
	}
	w.data.Services = append(w.data.Services, s)
	return s, nil
}

// RemoveService removes the price-list entry at index and returns it.
func (w *Workspace) RemoveService(index int) (model.Service, error) {
	if index < 0 || index >= len(w.data.Services) {
		return model.Service{}, fmt.Errorf("removing service %d: %w", index, apperr.ErrOutOfRange)
	}
	s := w.data.Services[index]
	w.data.Services = slices.Delete(w.data.Services, index, index+1)
	return s, nil
}
