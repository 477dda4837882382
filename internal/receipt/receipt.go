// Package receipt pulls text and totals out of receipt images.
package receipt

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"

	"github.com/theirongolddev/scold/internal/model"
)

// Extractor turns an image into text. Failures yield "".
type Extractor interface {
	Extract(ctx context.Context, imagePath string) string
}

// Tesseract runs the tesseract command line tool.
type Tesseract struct {
	Binary   string // defaults to "tesseract"
	Language string // optional -l value
}

func (t Tesseract) Extract(ctx context.Context, imagePath string) string {
	bin := t.Binary
	if bin == "" {
		bin = "tesseract"
	}
	args := []string{imagePath, "stdout"}
	if t.Language != "" {
		args = append(args, "-l", t.Language)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...) //nolint:gosec // binary comes from the user's config
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		slog.Warn("ocr failed", "image", imagePath, "error", err, "stderr", strings.TrimSpace(stderr.String()))
		return ""
	}
	return strings.TrimSpace(stdout.String())
}

var (
	amountRe = regexp.MustCompile(`\d{1,3}(?:[ ,.]\d{3})*[.,]\d{2}\b|\d+[.,]\d{2}\b`)
	totalRe  = regexp.MustCompile(`(?i)\btotal\b`)
	subRe    = regexp.MustCompile(`(?i)sub\s*-?\s*total`)
)

// DetectTotal guesses the amount paid on a receipt. It prefers the last
// amount on the last line mentioning a total (subtotals excluded) and falls
// back to the largest amount anywhere.
func DetectTotal(text string) (model.Money, bool) {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if !totalRe.MatchString(line) || subRe.MatchString(line) {
			continue
		}
		amounts := amountsIn(line)
		if len(amounts) > 0 {
			return amounts[len(amounts)-1], true
		}
	}

	var best model.Money
	found := false
	for _, m := range amountsIn(text) {
		if !found || m.Cmp(best) > 0 {
			best, found = m, true
		}
	}
	return best, found
}

func amountsIn(s string) []model.Money {
	var out []model.Money
	for _, raw := range amountRe.FindAllString(s, -1) {
		if m, err := model.ParseMoney(normalizeAmount(raw)); err == nil {
			out = append(out, m)
		}
	}
	return out
}

// normalizeAmount turns "1.234,56", "1,234.56" or "1 234,56" into "1234.56".
// The last separator is always the decimal point.
func normalizeAmount(raw string) string {
	dec := len(raw) - 3
	intPart := raw[:dec]
	intPart = strings.NewReplacer(",", "", ".", "", " ", "").Replace(intPart)
	return intPart + "." + raw[dec+1:]
}
