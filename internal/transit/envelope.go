package transit

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// envelope is the response.body.items.item wrapper used by the public data portal.
// item is an array, a single object when there is one result, and items is ""
// when there are none.
type envelope[T any] struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items      items[T] `json:"items"`
			TotalCount int      `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// resultOK is the portal's success code
const resultOK = "00"

func (e *envelope[T]) err() error {
	code := e.Response.Header.ResultCode
	if code == "" || code == resultOK {
		return nil
	}
	return fmt.Errorf("provider returned %s: %s", code, e.Response.Header.ResultMsg)
}

func (e *envelope[T]) list() []T {
	return e.Response.Body.Items.Item
}

type items[T any] struct {
	Item itemList[T] `json:"item"`
}

func (it *items[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	var raw struct {
		Item itemList[T] `json:"item"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	it.Item = raw.Item
	return nil
}

type itemList[T any] []T

func (l *itemList[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '[':
		var many []T
		if err := json.Unmarshal(b, &many); err != nil {
			return err
		}
		*l = many
	case '{':
		var one T
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		*l = []T{one}
	}
	return nil
}

// flexString accepts a JSON string or number. The portal sends timestamps and
// ids as numbers on some endpoints and strings on others.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexInt accepts a JSON number or numeric string; anything else decodes as 0
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = flexInt(f)
	return nil
}
