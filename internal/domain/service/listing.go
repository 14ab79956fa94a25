package service

import (
	"sort"
	"strings"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/pkg/utils"
)

// Firestore caps "in" filters at 30 values.
const maxInFilterValues = 30

const eroticShortcut = "erotik"

// ListingFilter is the client-side refinement applied on top of the store query.
type ListingFilter struct {
	Categories []string
	Search     string
}

// ParseCategories splits a comma separated category parameter, keeping only known names.
func ParseCategories(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		c := strings.TrimSpace(part)
		if c == "" || seen[c] || !entity.IsCategory(c) {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) == maxInFilterValues {
			break
		}
	}
	return out
}

// Normalize applies the "erotik" search shortcut, which selects the Erotik
// category instead of searching for the word.
func (f ListingFilter) Normalize() ListingFilter {
	out := ListingFilter{Categories: f.Categories, Search: strings.TrimSpace(f.Search)}
	if utils.Fold(out.Search) == eroticShortcut {
		out.Categories = []string{entity.CategoryErotic}
		out.Search = ""
	}
	return out
}

func (f ListingFilter) selected(category string) bool {
	for _, c := range f.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	for _, field := range fields {
		if utils.ContainsFold(field, term) {
			return true
		}
	}
	return false
}

// FilterProducts hides sensitive categories that were not selected, applies
// the free-text search and orders newest first. The input slice is not modified.
func FilterProducts(products []*entity.Product, f ListingFilter) []*entity.Product {
	f = f.Normalize()
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if entity.IsSensitiveCategory(p.Category) && !f.selected(p.Category) {
			continue
		}
		if len(f.Categories) > 0 && !f.selected(p.Category) {
			continue
		}
		if !matchesSearch(f.Search, p.Name, p.Description) {
			continue
		}
		out = append(out, p)
	}
	SortProductsNewest(out)
	return out
}

// FilterFood searches within an already category-scoped food listing.
func FilterFood(products []*entity.Product, search string) []*entity.Product {
	search = strings.TrimSpace(search)
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p.Category != entity.CategoryFood || !p.IsAvailable {
			continue
		}
		if matchesSearch(search, p.Name, p.Description) {
			out = append(out, p)
		}
	}
	SortProductsNewest(out)
	return out
}

func SortProductsNewest(products []*entity.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
}

func SortOffersNewest(offers []*entity.Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].CreatedAt.After(offers[j].CreatedAt)
	})
}

func SortRequestsNewest(requests []*entity.Request) {
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
}

func SortProposalsNewest(proposals []*entity.Proposal) {
	sort.SliceStable(proposals, func(i, j int) bool {
		return proposals[i].CreatedAt.After(proposals[j].CreatedAt)
	})
}

// ComputeStats aggregates a merchant's own products and received offers.
func ComputeStats(products []*entity.Product, offers []*entity.Offer) entity.MerchantStats {
	var st entity.MerchantStats
	st.TotalProducts = len(products)
	for _, p := range products {
		if p.IsAvailable {
			st.ActiveProducts++
		}
		st.TotalViews += p.Views
	}
	for _, o := range offers {
		if o.IsPending() {
			st.PendingOffers++
		}
	}
	return st
}
