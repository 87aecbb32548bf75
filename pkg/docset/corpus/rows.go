package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/cognicore/docset/pkg/docset/docred"
)

// Defaults for the hosted DocRED dataset.
const (
	DefaultBaseURL  = "https://datasets-server.huggingface.co"
	DefaultDataset  = "docred"
	DefaultConfig   = "default"
	DefaultSplit    = "validation"
	DefaultPageSize = 100
)

// RowsClient streams dataset rows from the Hugging Face
// datasets-server rows API, one page at a time. It implements Source;
// pages are fetched lazily as Next drains them, so early-terminating
// consumers never pull the whole split.
type RowsClient struct {
	BaseURL  string
	Dataset  string
	Config   string
	Split    string
	PageSize int
	HTTP     *http.Client

	buf    []Record
	offset int
	total  int
	done   bool
}

// NewRowsClient creates a client for the DocRED validation split.
func NewRowsClient() *RowsClient {
	return &RowsClient{
		BaseURL:  DefaultBaseURL,
		Dataset:  DefaultDataset,
		Config:   DefaultConfig,
		Split:    DefaultSplit,
		PageSize: DefaultPageSize,
		total:    -1,
	}
}

// rowsResponse is the shape of the rows API payload.
type rowsResponse struct {
	Rows []struct {
		RowIdx int     `json:"row_idx"`
		Row    rowData `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

// rowData is one dataset row. The hosted DocRED stores labels in
// columnar form; convert turns them back into triples.
type rowData struct {
	Title     string             `json:"title"`
	Sents     [][]string         `json:"sents"`
	VertexSet [][]docred.Mention `json:"vertexSet"`
	Labels    columnarLabels     `json:"labels"`
}

type columnarLabels struct {
	Head       []int    `json:"head"`
	Tail       []int    `json:"tail"`
	RelationID []string `json:"relation_id"`
}

func (r rowData) convert() (Record, error) {
	if len(r.Labels.Head) != len(r.Labels.Tail) || len(r.Labels.Head) != len(r.Labels.RelationID) {
		return Record{}, fmt.Errorf("row %q: mismatched label columns (%d head, %d tail, %d relation)",
			r.Title, len(r.Labels.Head), len(r.Labels.Tail), len(r.Labels.RelationID))
	}

	labels := make([]docred.Label, len(r.Labels.Head))
	for i := range r.Labels.Head {
		labels[i] = docred.Label{
			H: r.Labels.Head[i],
			T: r.Labels.Tail[i],
			R: r.Labels.RelationID[i],
		}
	}

	return Record{
		Title:     r.Title,
		Sents:     r.Sents,
		VertexSet: r.VertexSet,
		Labels:    labels,
	}, nil
}

// Next returns the next row of the split, fetching a new page when the
// current one is drained.
func (c *RowsClient) Next(ctx context.Context) (Record, bool, error) {
	if len(c.buf) == 0 && !c.done {
		if err := c.fetchPage(ctx); err != nil {
			return Record{}, false, err
		}
	}
	if len(c.buf) == 0 {
		return Record{}, false, nil
	}
	rec := c.buf[0]
	c.buf = c.buf[1:]
	return rec, true, nil
}

func (c *RowsClient) fetchPage(ctx context.Context) error {
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}

	params := url.Values{}
	params.Set("dataset", c.Dataset)
	params.Set("config", c.Config)
	params.Set("split", c.Split)
	params.Set("offset", fmt.Sprintf("%d", c.offset))
	params.Set("length", fmt.Sprintf("%d", c.PageSize))

	reqURL := c.BaseURL + "/rows?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("fetch rows at offset %d: %w", c.offset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch rows at offset %d: HTTP %d", c.offset, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var page rowsResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return fmt.Errorf("parse rows at offset %d: %w", c.offset, err)
	}

	for _, row := range page.Rows {
		rec, err := row.Row.convert()
		if err != nil {
			return err
		}
		c.buf = append(c.buf, rec)
	}

	c.offset += len(page.Rows)
	c.total = page.NumRowsTotal
	if len(page.Rows) < c.PageSize || (c.total >= 0 && c.offset >= c.total) {
		c.done = true
	}
	return nil
}
