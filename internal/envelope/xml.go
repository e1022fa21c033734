package envelope

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

type xmlResponse struct {
	XMLName xml.Name
	Header  struct {
		ResultCode string `xml:"resultCode"`
		ResultMsg  string `xml:"resultMsg"`
	} `xml:"header"`
	Body struct {
		NumOfRows  string `xml:"numOfRows"`
		PageNo     string `xml:"pageNo"`
		TotalCount string `xml:"totalCount"`
		Items      struct {
			Item []xmlItem `xml:"item"`
		} `xml:"items"`
	} `xml:"body"`
	CmmMsgHeader struct {
		ErrMsg           string `xml:"errMsg"`
		ReturnAuthMsg    string `xml:"returnAuthMsg"`
		ReturnReasonCode string `xml:"returnReasonCode"`
	} `xml:"cmmMsgHeader"`
}

type xmlItem struct {
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func decodeXML(body []byte) (*Envelope, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charsetReader

	var doc xmlResponse
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}

	switch doc.XMLName.Local {
	case "response":
	case "OpenAPI_ServiceResponse":
		h := doc.CmmMsgHeader
		msg := h.ReturnAuthMsg
		if msg == "" {
			msg = h.ErrMsg
		}
		return &Envelope{
			ResultCode: strings.TrimSpace(h.ReturnReasonCode),
			ResultMsg:  strings.TrimSpace(msg),
		}, nil
	default:
		return nil, fmt.Errorf("%w: root element <%s>", ErrUnrecognized, doc.XMLName.Local)
	}

	env := &Envelope{
		ResultCode: strings.TrimSpace(doc.Header.ResultCode),
		ResultMsg:  strings.TrimSpace(doc.Header.ResultMsg),
	}
	if err := env.setCounters(doc.Body.PageNo, doc.Body.NumOfRows, doc.Body.TotalCount); err != nil {
		return nil, err
	}

	env.Items = make([]Record, 0, len(doc.Body.Items.Item))
	for _, item := range doc.Body.Items.Item {
		rec := Record{values: make(map[string]string, len(item.Fields))}
		for _, f := range item.Fields {
			rec.Set(f.XMLName.Local, f.Value)
		}
		env.Items = append(env.Items, rec)
	}
	return env, nil
}

// charsetReader transcodes non-UTF-8 documents, such as EUC-KR
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
