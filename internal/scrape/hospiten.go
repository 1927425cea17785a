package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mario-agban/CarpeMed/internal"
	"github.com/mario-agban/CarpeMed/internal/util"
)

const (
	hospitenListURL   = "https://hospiten.com/en/API/Hospiten/Professional/GetProfessionals"
	hospitenDetailURL = "https://hospiten.com/en/API/Hospiten/Professional/GetProfessional"
)

// HospitenScraper harvests the Hospiten group's professional-directory
// API: one POST to list professional ids for a center, then one POST
// per professional for the detail record.
type HospitenScraper struct {
	src     Source
	client  *http.Client
	limiter *util.RateLimiter
}

type hospitenListResponse struct {
	Professionals []struct {
		ID int `json:"ProfessionalId"`
	} `json:"Professionals"`
}

type hospitenDetailResponse struct {
	Professional hospitenProfessional `json:"Professional"`
}

type hospitenProfessional struct {
	Name              string `json:"Name"`
	LastName          string `json:"LastName"`
	DetailURL         string `json:"DetailUrl"`
	PhotoURL          string `json:"ImageUrl"`
	EducationInfo     string `json:"EducationInfo"`
	MemberOfSocieties string `json:"MemberOfSocieties"`
	Specialties       []struct {
		Name string `json:"Name"`
	} `json:"Specialties"`
}

func (h *HospitenScraper) Scrape(ctx context.Context) ([]internal.RawProviderRecord, error) {
	ids, err := h.professionalIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("hospiten %s: %w", h.src.ShortName, err)
	}
	slog.Info("collected professional ids", "source", h.src.ShortName, "count", len(ids))

	records := make([]internal.RawProviderRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := h.professional(ctx, id)
		if err != nil {
			slog.Warn("skipping professional", "source", h.src.ShortName, "id", id, "err", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (h *HospitenScraper) professionalIDs(ctx context.Context) ([]int, error) {
	payload := map[string]any{
		"ModuleId":      h.src.Hospiten.ModuleID,
		"Culture":       "en-US",
		"PageSize":      h.src.Hospiten.PageSize,
		"CurrentPage":   1,
		"SortColumn":    "",
		"SortOrder":     "ASC",
		"CountryList":   []any{},
		"CenterList":    []map[string]int{{"Id": h.src.Hospiten.CenterID}},
		"SpecialtyList": []any{},
	}

	var listResp hospitenListResponse
	if err := h.post(ctx, hospitenListURL, payload, &listResp); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(listResp.Professionals))
	for _, p := range listResp.Professionals {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (h *HospitenScraper) professional(ctx context.Context, id int) (internal.RawProviderRecord, error) {
	payload := map[string]any{
		"ModuleId":       h.src.Hospiten.ModuleID,
		"ProfessionalId": id,
		"Culture":        "en-US",
		"UserLocation":   nil,
	}

	var detail hospitenDetailResponse
	if err := h.post(ctx, hospitenDetailURL, payload, &detail); err != nil {
		return internal.RawProviderRecord{}, err
	}

	p := detail.Professional
	rec := internal.RawProviderRecord{Country: h.src.Country}

	// The API lists professionals surname-first.
	name := strings.TrimSpace(p.LastName + " " + p.Name)
	if name != "" {
		rec.Name = &name
	}
	if s := joinNames(p.Specialties); s != "" {
		rec.Provider = &s
	}
	if p.DetailURL != "" {
		site := p.DetailURL
		rec.Website = &site
	}
	if p.PhotoURL != "" {
		photo := p.PhotoURL
		rec.PhotoURL = &photo
	}
	// Education and society-membership fields arrive as HTML fragments.
	if s := stripHTML(p.EducationInfo); s != "" {
		rec.Education = &s
	}
	if s := stripHTML(p.MemberOfSocieties); s != "" {
		rec.AdditionalInformation = &s
	}

	// Location is always the harvested hospital itself; the detail
	// center list is not a registry key.
	loc := h.src.Name
	rec.Location = &loc
	if h.src.City != "" {
		city := h.src.City
		rec.City = &city
	}
	return rec, nil
}

func (h *HospitenScraper) post(ctx context.Context, url string, payload any, out any) error {
	h.limiter.WaitTurn()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("TabId", strconv.Itoa(h.src.Hospiten.TabID))
	req.Header.Set("ModuleId", strconv.Itoa(h.src.Hospiten.ModuleID))

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func joinNames(items []struct {
	Name string `json:"Name"`
}) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if name := strings.TrimSpace(item.Name); name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// stripHTML flattens an HTML fragment to its text content with
// whitespace runs collapsed.
func stripHTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	// Pad tag boundaries so text in adjacent elements does not fuse.
	padded := strings.ReplaceAll(fragment, "<", " <")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(padded))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
