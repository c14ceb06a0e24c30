// Package sanitize turns raw submission fields into the stored HTML form and
// enforces the board's posting policy. It is pure: no I/O, no side effects.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/okibe-dev/okibe/internal/domain"
	internal_errors "github.com/okibe-dev/okibe/internal/errors"
)

// Entity escaping runs before any markup rewriting below, so injected markup
// never survives into the stored content.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"`", "&#96;",
)

var (
	// >>N/M (cross-thread) and >>N (same thread) on already-escaped text.
	// A single alternating pass keeps two-part references from being eaten
	// as two single-part ones and never rescans generated anchor text.
	quoteRefRe = regexp.MustCompile(`&gt;&gt;(\d+)(/(\d+))?`)

	blankRunRe = regexp.MustCompile(`\n{2,}`)
	brRunRe    = regexp.MustCompile(`(<br>){2,}`)
)

var strict = bluemonday.StrictPolicy()

// StripMarkup flattens markup out of display strings that bypass the posting
// pipeline (board names, policy labels).
func StripMarkup(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// Clean validates sub against policy and returns a copy whose text fields are
// sanitized into their stored form. Any failure is a validation error carrying
// a user-facing message; sub itself is never modified.
func Clean(sub domain.PostSubmission, policy domain.PostingPolicy) (domain.PostSubmission, error) {
	if err := lengthCheck(sub.AuthorName, policy.MaxNameLen, "Name"); err != nil {
		return domain.PostSubmission{}, err
	}
	if err := lengthCheck(sub.Subject, policy.MaxSubjectLen, "Subject"); err != nil {
		return domain.PostSubmission{}, err
	}
	if err := lengthCheck(sub.Content, policy.MaxContentLen, "Content"); err != nil {
		return domain.PostSubmission{}, err
	}

	clean := sub
	clean.AuthorName = Field(sub.AuthorName)
	if clean.AuthorName == "" {
		clean.AuthorName = "Anonymous"
	}
	clean.Subject = Field(sub.Subject)
	clean.Content = Content(sub.Content)

	if err := enforcePolicy(&clean, policy); err != nil {
		return domain.PostSubmission{}, err
	}
	return clean, nil
}

// lengthCheck validates the raw field before escaping inflates it. Empty
// fields are absent, not invalid.
func lengthCheck(s string, max int, name string) error {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "" {
		return nil
	}
	if utf8.RuneCountInString(s) > max {
		return internal_errors.Validation(fmt.Sprintf("%s must be under %d characters.", name, max))
	}
	return nil
}

// Field sanitizes a plain text field (name, subject, original filename):
// entity escaping and line-break normalization, no quote markup.
func Field(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = normalize(escaper.Replace(s))
	s = strings.ReplaceAll(s, "\n", "<br>")
	return brRunRe.ReplaceAllString(s, "<br><br>")
}

// Content sanitizes post content: escaping and normalization as Field, plus
// quote-link and quote-line rewriting applied in between, while line
// boundaries still exist.
func Content(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = normalize(escaper.Replace(s))

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = quoteRefRe.ReplaceAllStringFunc(line, rewriteQuoteRef)
		// A line opening with a single > (not a reference) is a quote.
		if strings.HasPrefix(line, "&gt;") && !strings.HasPrefix(line, "&gt;&gt;") {
			line = "<span class='quote'>" + strings.TrimPrefix(line, "&gt;") + "</span>"
		}
		lines[i] = line
	}
	s = strings.Join(lines, "<br>")
	return brRunRe.ReplaceAllString(s, "<br><br>")
}

// normalize converts CRLF to LF and collapses runs of blank lines down to a
// single blank line.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return blankRunRe.ReplaceAllString(s, "\n\n")
}

func rewriteQuoteRef(match string) string {
	sub := quoteRefRe.FindStringSubmatch(match)
	if sub[3] != "" {
		// >>thread/post links into the target thread at the post anchor.
		return fmt.Sprintf("<a class='quotelink' data-id='%s' href='../threads/%s#%s'>&gt;&gt;%s/%s</a>",
			sub[3], sub[1], sub[3], sub[1], sub[3])
	}
	// Bare >>post is an anchor within the current thread.
	return fmt.Sprintf("<a class='quotelink' data-id='%s' href='#%s'>&gt;&gt;%s</a>", sub[1], sub[1], sub[1])
}

func enforcePolicy(sub *domain.PostSubmission, policy domain.PostingPolicy) error {
	hasFiles := len(sub.StagedFiles) > 0

	if policy.MaxFiles > 0 && len(sub.StagedFiles) > policy.MaxFiles {
		return internal_errors.Validation(fmt.Sprintf("At most %d files per post.", policy.MaxFiles))
	}

	if sub.ParentNumber != 0 {
		if policy.ReplyContentOrFile && sub.Content == "" && !hasFiles {
			return internal_errors.Validation("Content or file required")
		}
		return nil
	}
	if policy.ThreadRequireContent && sub.Content == "" {
		return internal_errors.Validation("Content required")
	}
	if policy.ThreadRequireSubject && sub.Subject == "" {
		return internal_errors.Validation("Subject required")
	}
	if policy.ThreadRequireFile && !hasFiles {
		return internal_errors.Validation("File required")
	}
	return nil
}
