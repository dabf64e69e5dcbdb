package core

import (
	"time"

	"github.com/mikey/email-utils/internal/domainlist"
	"go.uber.org/zap"
)

// DomainLists holds the disposable list and the allowlist.
// Each list is loaded from the provider the first time it is read.
// DomainLists does no locking; callers that mutate it concurrently
// must serialize access themselves.
type DomainLists struct {
	provider DomainListProvider
	logger   *zap.Logger
	sets     map[ListKind]*domainlist.Set
	info     map[ListKind]ListInfo
}

// NewDomainLists creates lists backed by provider. provider may be nil,
// in which case both lists start empty.
func NewDomainLists(provider DomainListProvider, logger *zap.Logger) *DomainLists {
	return &DomainLists{
		provider: provider,
		logger:   logger,
		sets:     make(map[ListKind]*domainlist.Set, 2),
		info:     make(map[ListKind]ListInfo, 2),
	}
}

// Set returns the list for kind, loading it if needed
func (l *DomainLists) Set(kind ListKind) *domainlist.Set {
	if set, ok := l.sets[kind]; ok {
		return set
	}
	l.load(kind, "", nil)
	return l.sets[kind]
}

// Contains checks whether domain is on the list for kind
func (l *DomainLists) Contains(kind ListKind, domain string) bool {
	return l.Set(kind).Contains(domain)
}

// Reload discards and reloads the list for kind from the provider
func (l *DomainLists) Reload(kind ListKind) {
	delete(l.sets, kind)
	l.load(kind, "", nil)
}

// LoadPath replaces the list for kind with a user supplied list.
// A failed load leaves the list empty and returns false.
func (l *DomainLists) LoadPath(kind ListKind, path string) bool {
	delete(l.sets, kind)
	return l.load(kind, path, nil)
}

// Replace sets the list for kind to domains without consulting the provider
func (l *DomainLists) Replace(kind ListKind, domains []string) {
	if domains == nil {
		domains = []string{}
	}
	delete(l.sets, kind)
	l.load(kind, "", domains)
}

// Clear drops the list for kind; the next read loads it again
func (l *DomainLists) Clear(kind ListKind) {
	delete(l.sets, kind)
	delete(l.info, kind)
}

// Add inserts domains into the list for kind
func (l *DomainLists) Add(kind ListKind, domains ...string) int {
	set := l.Set(kind)
	added := set.Add(domains...)
	l.touch(kind)
	return added
}

// Remove deletes domains from the list for kind
func (l *DomainLists) Remove(kind ListKind, domains ...string) int {
	set := l.Set(kind)
	removed := set.Remove(domains...)
	l.touch(kind)
	return removed
}

// Metadata returns a snapshot of the load state of both lists
func (l *DomainLists) Metadata() ListMetadata {
	return ListMetadata{
		Disposable: l.info[ListDisposable],
		Allowlist:  l.info[ListAllowlist],
	}
}

func (l *DomainLists) touch(kind ListKind) {
	info := l.info[kind]
	info.Count = l.sets[kind].Len()
	l.info[kind] = info
}

func (l *DomainLists) load(kind ListKind, path string, domains []string) bool {
	info := ListInfo{Source: string(kind)}

	var err error
	switch {
	case domains != nil:
		info.Source = "inline"
	case path != "":
		info.Source = path
		if l.provider != nil {
			domains, err = l.provider.LoadPath(path)
		}
	case l.provider != nil:
		domains, err = l.provider.Load(kind)
	}

	if err != nil {
		l.logger.Warn("Failed to load domain list, using empty list",
			zap.String("list", string(kind)),
			zap.String("source", info.Source),
			zap.Error(err))
		info.Error = err.Error()
		domains = nil
	}

	set := domainlist.New(domains, l.logger)
	l.sets[kind] = set

	info.Loaded = err == nil
	info.Count = set.Len()
	info.LoadedAt = time.Now()
	l.info[kind] = info

	if err == nil {
		l.logger.Info("Loaded domain list",
			zap.String("list", string(kind)),
			zap.String("source", info.Source),
			zap.Int("count", info.Count))
	}

	return err == nil
}
