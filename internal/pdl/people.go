package pdl

type People struct {
	Items []*Person
}

// DecodePeople decodes raw hits in order. Hits that cannot be decoded are
// skipped and reported by index.
func DecodePeople(hits []map[string]any) (*People, map[int]error) {
	people := &People{Items: make([]*Person, 0, len(hits))}
	failed := make(map[int]error)

	for idx, hit := range hits {
		person, err := DecodePerson(hit)
		if err != nil {
			failed[idx] = err
			continue
		}
		people.Items = append(people.Items, person)
	}

	return people, failed
}

func (p *People) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

// Keep removes every person for which keep returns false, preserving the order
// of the rest, and returns the removed people.
func (p *People) Keep(keep func(*Person) bool) []*Person {
	kept := p.Items[:0]
	var dropped []*Person
	for _, person := range p.Items {
		if keep(person) {
			kept = append(kept, person)
			continue
		}
		dropped = append(dropped, person)
	}
	for i := len(kept); i < len(p.Items); i++ {
		p.Items[i] = nil
	}
	p.Items = kept
	return dropped
}

// IDs returns the identifiers of people, for logging.
func IDs(people []*Person) []string {
	ids := make([]string, 0, len(people))
	for _, person := range people {
		ids = append(ids, person.ID)
	}
	return ids
}
