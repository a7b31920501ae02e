package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// VideoDetails is the subset of the watch page's player response used to
// fill in metadata the analysis response may lack.
type VideoDetails struct {
	ID            string `json:"videoId"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	LengthSeconds int    `json:"lengthSeconds,string"`
}

// WatchDetails loads the watch page for the given video id and extracts
// its video details.
func WatchDetails(ctx context.Context, id string) (*VideoDetails, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, WatchURL(id), nil)
	if err != nil {
		return nil, err
	}
	bits, err := loadRequest(req)
	if err != nil {
		return nil, err
	}
	det, err := ParseWatchPage(bits)
	if err != nil {
		return nil, fmt.Errorf("video ID %q: %w", id, err)
	}
	return det, nil
}

// ParseWatchPage extracts video details from watch page HTML. The details
// live in a JSON blob embedded in a script tag; a json.Decoder is used so
// the page content after the blob can be ignored.
func ParseWatchPage(bits []byte) (*VideoDetails, error) {
	const needle = `"videoDetails":`
	i := bytes.Index(bits, []byte(needle))
	if i < 0 {
		if bytes.Contains(bits, []byte(`class="g-recaptcha"`)) {
			return nil, errors.New("rate limit exceeded")
		} else if !bytes.Contains(bits, []byte(`playabilityStatus`)) {
			return nil, errors.New("not found")
		}
		return nil, errors.New("no video details on watch page")
	}

	var det VideoDetails
	dec := json.NewDecoder(bytes.NewReader(bits[i+len(needle):]))
	if err := dec.Decode(&det); err != nil {
		return nil, fmt.Errorf("decoding video details: %w", err)
	}
	return &det, nil
}

func loadRequest(req *http.Request) ([]byte, error) {
	rsp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()
	var buf bytes.Buffer
	io.Copy(&buf, rsp.Body)
	if rsp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed: %s", rsp.Status)
	}
	return buf.Bytes(), nil
}
