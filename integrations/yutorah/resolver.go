// Package yutorah scrapes lecture pages for their audio file.
package yutorah

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	domainLecture "github.com/shiurnotes/shiurnotes/domains/lecture"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const maxRedirects = 5

type Resolver struct {
	client    *fasthttp.Client
	userAgent string
}

// NewResolver returns a resolver that identifies itself with userAgent.
// A zero timeout means 30 seconds.
func NewResolver(userAgent string, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Resolver{
		client: &fasthttp.Client{
			Name:                "shiurnotes",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		userAgent: userAgent,
	}
}

// Resolve fetches pageURL and returns the absolute URL of its audio file.
// Every failure, including transport errors, wraps domainLecture.ErrMediaNotFound.
func (r *Resolver) Resolve(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, finalURL, err := r.fetch(pageURL)
	if err != nil {
		logrus.WithError(err).Warnf("[RESOLVER] failed to fetch %s", pageURL)
		return "", fmt.Errorf("%w: %v", domainLecture.ErrMediaNotFound, err)
	}

	link, err := FindMediaLink(body, finalURL)
	if err != nil {
		return "", err
	}
	logrus.Debugf("[RESOLVER] found audio %s on %s", link, pageURL)
	return link, nil
}

func (r *Resolver) fetch(pageURL string) ([]byte, string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(pageURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	if r.userAgent != "" {
		req.Header.SetUserAgent(r.userAgent)
	}

	if err := r.client.DoRedirects(req, resp, maxRedirects); err != nil {
		return nil, "", err
	}
	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return nil, "", fmt.Errorf("unexpected status %d", status)
	}

	// resp is released on return; keep a copy of the body.
	body := append([]byte(nil), resp.Body()...)
	return body, req.URI().String(), nil
}

// FindMediaLink applies the lookup strategies in order: an anchor whose href
// ends in .mp3, then an <audio src>, then an <audio><source src>. Relative
// links are resolved against pageURL.
func FindMediaLink(page []byte, pageURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("%w: parse page: %v", domainLecture.ErrMediaNotFound, err)
	}

	var link string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if strings.HasSuffix(strings.ToLower(href), ".mp3") {
			link = href
			return false
		}
		return true
	})

	if link == "" {
		if src, ok := doc.Find("audio[src]").First().Attr("src"); ok {
			link = strings.TrimSpace(src)
		}
	}
	if link == "" {
		if src, ok := doc.Find("audio source[src]").First().Attr("src"); ok {
			link = strings.TrimSpace(src)
		}
	}
	if link == "" {
		return "", domainLecture.ErrMediaNotFound
	}

	return absolute(link, pageURL), nil
}

func absolute(link, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}
