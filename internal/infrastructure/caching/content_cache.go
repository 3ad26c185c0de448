// Package caching provides the in-memory content cache the repositories read
// through. The public site renders from cache on every request; repositories
// populate it lazily and invalidate it on every mutation.
package caching

import (
	"sync"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
)

// ContentCache holds each content kind in a single slot. All accessors
// deep-copy so callers can never mutate cached state in place.
type ContentCache struct {
	mu sync.RWMutex

	about        *content.AboutInfo
	contact      *content.ContactInfo
	projects     []content.Project
	certificates []content.Certificate
	techStack    []content.TechStackItem
}

// NewContentCache creates an empty cache.
func NewContentCache() *ContentCache {
	return &ContentCache{}
}

func (c *ContentCache) GetAbout() (content.AboutInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.about == nil {
		return content.AboutInfo{}, false
	}
	return c.about.Clone(), true
}

func (c *ContentCache) SetAbout(info content.AboutInfo) {
	clone := info.Clone()
	c.mu.Lock()
	c.about = &clone
	c.mu.Unlock()
}

func (c *ContentCache) GetContact() (content.ContactInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.contact == nil {
		return content.ContactInfo{}, false
	}
	return c.contact.Clone(), true
}

func (c *ContentCache) SetContact(info content.ContactInfo) {
	clone := info.Clone()
	c.mu.Lock()
	c.contact = &clone
	c.mu.Unlock()
}

func (c *ContentCache) GetProjects() ([]content.Project, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.projects == nil {
		return nil, false
	}
	return cloneProjects(c.projects), true
}

func (c *ContentCache) SetProjects(projects []content.Project) {
	clone := cloneProjects(projects)
	c.mu.Lock()
	c.projects = clone
	c.mu.Unlock()
}

func (c *ContentCache) InvalidateProjects() {
	c.mu.Lock()
	c.projects = nil
	c.mu.Unlock()
}

func (c *ContentCache) GetCertificates() ([]content.Certificate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.certificates == nil {
		return nil, false
	}
	return cloneCertificates(c.certificates), true
}

func (c *ContentCache) SetCertificates(certs []content.Certificate) {
	clone := cloneCertificates(certs)
	c.mu.Lock()
	c.certificates = clone
	c.mu.Unlock()
}

func (c *ContentCache) InvalidateCertificates() {
	c.mu.Lock()
	c.certificates = nil
	c.mu.Unlock()
}

func (c *ContentCache) GetTechStack() ([]content.TechStackItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.techStack == nil {
		return nil, false
	}
	return cloneTechStack(c.techStack), true
}

func (c *ContentCache) SetTechStack(items []content.TechStackItem) {
	clone := cloneTechStack(items)
	c.mu.Lock()
	c.techStack = clone
	c.mu.Unlock()
}

func (c *ContentCache) InvalidateTechStack() {
	c.mu.Lock()
	c.techStack = nil
	c.mu.Unlock()
}

// Invalidate clears every slot.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.about = nil
	c.contact = nil
	c.projects = nil
	c.certificates = nil
	c.techStack = nil
	c.mu.Unlock()
}

func cloneProjects(in []content.Project) []content.Project {
	out := make([]content.Project, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

func cloneCertificates(in []content.Certificate) []content.Certificate {
	out := make([]content.Certificate, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func cloneTechStack(in []content.TechStackItem) []content.TechStackItem {
	out := make([]content.TechStackItem, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}
