package davkit

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gopatchy/metadata"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// Collection is an in-memory set of named resources. Each resource holds one
// or more renditions, keyed by content type; the rendition set is the
// candidate pool for content negotiation on GET.
type Collection struct {
	name     string
	handlers map[string]FileHandler

	resources map[string]*resource
	mu        sync.RWMutex
}

type resource struct {
	metadata.Metadata
	renditions map[string]*rendition
}

type rendition struct {
	file File
	etag string
}

// Member is one rendition of one resource.
type Member struct {
	Name        string
	ContentType string
	ETag        string
	Generation  int64
	File        File
}

// ListEntry is the listing view of a resource.
type ListEntry struct {
	metadata.Metadata
	ContentTypes []string `json:"contentTypes"`
}

func NewCollection(name string) *Collection {
	c := &Collection{
		name:      name,
		handlers:  map[string]FileHandler{},
		resources: map[string]*resource{},
	}

	c.RegisterFileHandler(VCardType, func(content []byte) File { return NewVCardFile(content) })
	c.RegisterFileHandler(CalendarType, func(content []byte) File { return NewICalendarFile(content) })

	return c
}

func (c *Collection) Name() string {
	return c.name
}

func (c *Collection) RegisterFileHandler(contentType string, handler FileHandler) {
	c.handlers[ParseMediaRange(contentType).Type] = handler
}

// Put stores content as the rendition of the named content type, creating
// the resource if needed. ifMatch is an If-Match style condition evaluated
// against the current entity tag of that rendition (absent rendition means
// no tag, so "*" fails on create); the alternate "generation:N" tag form is
// also accepted. Returns the stored member and whether the resource was
// created.
func (c *Collection) Put(name, contentType string, content []byte, ifMatch string) (*Member, bool, error) {
	f := c.open(content, contentType)

	err := f.Validate()
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	base := ParseMediaRange(contentType).Type

	res := c.resources[name]

	current := ""
	if res != nil {
		if rend := res.renditions[base]; rend != nil {
			current = rend.etag
		}
	}

	if !c.ifMatch(ifMatch, current, res) {
		return nil, false, fmt.Errorf("If-Match: %s (%w)", ifMatch, ErrPreconditionFailed)
	}

	created := false

	if res == nil {
		res = &resource{
			renditions: map[string]*rendition{},
		}
		res.ID = name
		c.resources[name] = res
		created = true
	}

	etag := fmt.Sprintf("%x", sha256.Sum256(f.Normalized()))

	res.renditions[base] = &rendition{
		file: f,
		etag: etag,
	}

	res.Generation++
	res.ETag = etag

	return &Member{
		Name:        name,
		ContentType: base,
		ETag:        etag,
		Generation:  res.Generation,
		File:        f,
	}, created, nil
}

// Get returns the rendition of the given content type. contentType must be a
// concrete type, typically one picked by negotiation.
func (c *Collection) Get(name, contentType string) (*Member, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := c.resources[name]
	if res == nil {
		return nil, fmt.Errorf("%s (%w)", name, ErrNotFound)
	}

	rend := res.renditions[ParseMediaRange(contentType).Type]
	if rend == nil {
		return nil, fmt.Errorf("%s: %s (%w)", name, contentType, ErrNotFound)
	}

	return &Member{
		Name:        name,
		ContentType: rend.file.ContentType(),
		ETag:        rend.etag,
		Generation:  res.Generation,
		File:        rend.file,
	}, nil
}

// Delete removes the named resource and all its renditions. A non-empty
// ifMatch condition is satisfied by any rendition's entity tag.
func (c *Collection) Delete(name, ifMatch string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.resources[name]
	if res == nil {
		return fmt.Errorf("%s (%w)", name, ErrNotFound)
	}

	if ifMatch != "" {
		matched := false

		for _, rend := range res.renditions {
			if c.ifMatch(ifMatch, rend.etag, res) {
				matched = true
				break
			}
		}

		if !matched {
			return fmt.Errorf("If-Match: %s (%w)", ifMatch, ErrPreconditionFailed)
		}
	}

	delete(c.resources, name)

	return nil
}

// ContentTypes returns the types the collection can offer for a resource:
// the candidate pool for a negotiation call.
func (c *Collection) ContentTypes(name string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := c.resources[name]
	if res == nil {
		return nil, fmt.Errorf("%s (%w)", name, ErrNotFound)
	}

	ret := []string{}
	for ct := range res.renditions {
		ret = append(ret, ct)
	}

	sort.Strings(ret)

	return ret, nil
}

func (c *Collection) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ret := []string{}
	for name := range c.resources {
		ret = append(ret, name)
	}

	sort.Strings(ret)

	return ret
}

func (c *Collection) Entries() []*ListEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := []string{}
	for name := range c.resources {
		names = append(names, name)
	}

	sort.Strings(names)

	ret := []*ListEntry{}

	for _, name := range names {
		res := c.resources[name]

		cts := []string{}
		for ct := range res.renditions {
			cts = append(cts, ct)
		}

		sort.Strings(cts)

		entry := &ListEntry{
			ContentTypes: cts,
		}
		entry.Metadata = res.Metadata

		ret = append(ret, entry)
	}

	return ret
}

// IterWithFilter returns the members matching the filter, using the
// rendition's indexes when the file and the filter both support them and
// falling back to a full check otherwise.
func (c *Collection) IterWithFilter(filter Filter) ([]*Member, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := []string{}
	for name := range c.resources {
		names = append(names, name)
	}

	sort.Strings(names)

	ret := []*Member{}

	for _, name := range names {
		res := c.resources[name]

		rend := res.renditions[filter.ContentType()]
		if rend == nil {
			continue
		}

		matched, err := checkFilter(filter, name, rend.file)
		if err != nil {
			return nil, err
		}

		if matched {
			ret = append(ret, &Member{
				Name:        name,
				ContentType: rend.file.ContentType(),
				ETag:        rend.etag,
				Generation:  res.Generation,
				File:        rend.file,
			})
		}
	}

	return ret, nil
}

func checkFilter(filter Filter, name string, f File) (bool, error) {
	idx, ok := f.(Indexed)
	keySets := filter.IndexKeys()

	if !ok || len(keySets) == 0 {
		return filter.Check(name, f)
	}

	keys := []IndexKey{}
	for _, keySet := range keySets {
		keys = append(keys, keySet...)
	}

	return filter.CheckFromIndexes(name, Indexes(idx, keys))
}

func (c *Collection) open(content []byte, contentType string) File {
	if h, ok := c.handlers[ParseMediaRange(contentType).Type]; ok {
		return h(content)
	}

	return NewPlainFile(content, contentType)
}

// ifMatch evaluates a condition against an entity tag, also accepting the
// generation tag form.
func (c *Collection) ifMatch(condition, etag string, res *resource) bool {
	if ETagMatches(condition, etag) {
		return true
	}

	if res == nil {
		return false
	}

	return ETagMatches(condition, fmt.Sprintf("generation:%d", res.Generation))
}
