package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/theirongolddev/scold/internal/model"
)

// Categories is the config-owned category set. Changes are saved to the
// config file immediately; a change that cannot be saved is undone.
type Categories struct {
	mu   sync.Mutex
	cfg  *Config
	set  *model.CategorySet
	save func(Config) error
}

// NewCategories wraps cfg's category list. Saving rewrites only the
// category list of the file on disk, so overrides applied to cfg after
// loading are never persisted.
func NewCategories(cfg *Config) *Categories {
	return newCategories(cfg, saveCategories)
}

func saveCategories(cfg Config) error {
	onDisk, err := loadFile()
	if err != nil {
		return err
	}
	onDisk.General.Categories = cfg.General.Categories
	return Save(onDisk)
}

func newCategories(cfg *Config, save func(Config) error) *Categories {
	return &Categories{
		cfg:  cfg,
		set:  model.NewCategorySet(cfg.General.Categories...),
		save: save,
	}
}

// Contains reports whether name is a known category.
func (c *Categories) Contains(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Contains(name)
}

// Names returns the categories in order.
func (c *Categories) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Names()
}

// Ensure adds name if it is unknown and saves the config.
func (c *Categories) Ensure(name string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	added, err := c.set.Add(name)
	if err != nil || !added {
		return false, err
	}
	if err := c.persist(); err != nil {
		c.set.Remove(name)
		return false, err
	}
	return true, nil
}

// Remove drops name and saves the config. Removing an unknown name is an error.
func (c *Categories) Remove(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.set.Names()
	if !c.set.Remove(name) {
		return &model.NotFoundError{Kind: "category", Key: name}
	}
	if err := c.persist(); err != nil {
		c.set = model.NewCategorySet(before...)
		return err
	}
	return nil
}

// Merge adds every name in names not already known, saving once. Names are
// trimmed; a blank name fails the whole merge before anything changes.
func (c *Categories) Merge(names []string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	trimmed := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return 0, &model.ValidationError{Field: "category", Reason: "cannot be empty"}
		}
		trimmed = append(trimmed, name)
	}

	before := c.set.Names()
	n := 0
	for _, name := range trimmed {
		added, err := c.set.Add(name)
		if err != nil {
			c.set = model.NewCategorySet(before...)
			return 0, err
		}
		if added {
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	if err := c.persist(); err != nil {
		c.set = model.NewCategorySet(before...)
		return 0, err
	}
	return n, nil
}

func (c *Categories) persist() error {
	prev := c.cfg.General.Categories
	c.cfg.General.Categories = c.set.Names()
	if err := c.save(*c.cfg); err != nil {
		c.cfg.General.Categories = prev
		return fmt.Errorf("saving categories: %w", err)
	}
	return nil
}
