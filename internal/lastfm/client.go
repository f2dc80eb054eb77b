// Package lastfm implements the content-source collaborator on top of
// the last.fm REST API.
package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gojek/heimdall/v7/httpclient"

	"jumble/internal/models"
)

const (
	apiBaseURL    = "https://ws.audioscrobbler.com/2.0/"
	historyLimit  = 1000
	clientTimeout = 10 * time.Second
)

var ErrFetchImage = errors.New("lastfm: fetch cover image")

type Client struct {
	apiKey string
	http   *httpclient.Client
}

func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("lastfm: missing api key")
	}

	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(clientTimeout),
		httpclient.WithRetryCount(2),
	)

	return &Client{apiKey: apiKey, http: client}, nil
}

type artistPayload struct {
	TopArtists struct {
		Artist []struct {
			Name      string `json:"name"`
			PlayCount string `json:"playcount"`
		} `json:"artist"`
	} `json:"topartists"`
}

type albumPayload struct {
	TopAlbums struct {
		Album []struct {
			Name      string `json:"name"`
			PlayCount string `json:"playcount"`
			Artist    struct {
				Name string `json:"name"`
			} `json:"artist"`
			Image []struct {
				URL  string `json:"#text"`
				Size string `json:"size"`
			} `json:"image"`
		} `json:"album"`
	} `json:"topalbums"`
}

func (c *Client) TopArtists(ctx context.Context, lastfmUser string) ([]models.TopEntry, error) {
	body, err := c.call(ctx, "user.gettopartists", lastfmUser)
	if err != nil {
		return nil, err
	}

	var payload artistPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("lastfm: decode top artists: %w", err)
	}

	entries := make([]models.TopEntry, 0, len(payload.TopArtists.Artist))
	for _, a := range payload.TopArtists.Artist {
		plays, _ := strconv.Atoi(a.PlayCount)
		entries = append(entries, models.TopEntry{
			Name:      a.Name,
			PlayCount: plays,
		})
	}

	return entries, nil
}

func (c *Client) TopAlbums(ctx context.Context, lastfmUser string) ([]models.TopEntry, error) {
	body, err := c.call(ctx, "user.gettopalbums", lastfmUser)
	if err != nil {
		return nil, err
	}

	var payload albumPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("lastfm: decode top albums: %w", err)
	}

	entries := make([]models.TopEntry, 0, len(payload.TopAlbums.Album))
	for _, a := range payload.TopAlbums.Album {
		plays, _ := strconv.Atoi(a.PlayCount)
		cover := ""
		for _, img := range a.Image {
			if img.Size == "extralarge" && img.URL != "" {
				cover = img.URL
			}
		}

		entries = append(entries, models.TopEntry{
			Name:       a.Name,
			ArtistName: a.Artist.Name,
			PlayCount:  plays,
			CoverURL:   cover,
		})
	}

	return entries, nil
}

func (c *Client) CoverImage(ctx context.Context, coverURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchImage, err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchImage, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchImage, res.StatusCode)
	}

	return io.ReadAll(res.Body)
}

func (c *Client) call(ctx context.Context, method, user string) ([]byte, error) {
	params := url.Values{}
	params.Set("method", method)
	params.Set("user", user)
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(historyLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lastfm: %s: %w", method, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lastfm: %s: status %d", method, res.StatusCode)
	}

	return io.ReadAll(res.Body)
}
