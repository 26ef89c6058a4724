package filtering

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"
)

// ExcludedPeople is the exclude file: people that were already contacted.
type ExcludedPeople struct {
	Items []*ExcludedPerson
}

type ExcludedPerson struct {
	ID         string
	Name       string
	Email      string
	Company    string
	ExcludedAt time.Time
}

// LoadExcluded reads the exclude file. A missing or empty file is an empty list.
func LoadExcluded(path string) (*ExcludedPeople, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ExcludedPeople{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedPeople{}, nil
	}

	var excluded ExcludedPeople
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedPeople) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Items)
}

// Append adds the people of s that are not listed yet.
func (e *ExcludedPeople) Append(s *ExcludedPeople) {
	if s == nil {
		return
	}
	known := make(map[string]struct{}, len(e.Items))
	for _, person := range e.Items {
		known[person.key()] = struct{}{}
	}
	for _, person := range s.Items {
		if _, ok := known[person.key()]; ok {
			continue
		}
		known[person.key()] = struct{}{}
		e.Items = append(e.Items, person)
	}
}

func (e *ExcludedPeople) Emails() []string {
	emails := make([]string, 0, len(e.Items))
	for _, person := range e.Items {
		if person.Email != "" {
			emails = append(emails, person.Email)
		}
	}
	return emails
}

func (e *ExcludedPeople) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, person := range e.Items {
		if person.ID != "" {
			ids = append(ids, person.ID)
		}
	}
	return ids
}

func (e *ExcludedPeople) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

func (p *ExcludedPerson) key() string {
	if p.ID != "" {
		return "id:" + p.ID
	}
	return "email:" + strings.ToLower(p.Email)
}
