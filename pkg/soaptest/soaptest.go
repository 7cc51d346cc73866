// Package soaptest provides an in-process fake of an rpc-style SOAP service
// for tests. Responses follow the envelope shape the dispatcher expects: a
// result marker followed by the return element.
package soaptest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/beevik/etree"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Path is the route the fake service listens on.
const Path = "/rpc/soap/jirasoapservice-v2"

// Request is one call received by the fake.
type Request struct {
	Method string
	Params []*etree.Element
	Header http.Header
}

// Param returns the text of parameter i, or "" if it was not sent.
func (r Request) Param(i int) string {
	if i < 0 || i >= len(r.Params) {
		return ""
	}
	return r.Params[i].Text()
}

// Response is what a handler answers with. Return is raw XML placed inside
// the return element; Void omits the return element entirely.
type Response struct {
	Return string
	Void   bool
	Fault  *Fault
	Status int // overrides the HTTP status; 0 means 200, or 500 for faults
	Raw    string
}

// Fault is a SOAP fault.
type Fault struct {
	Code   string
	String string
	Detail string // element name placed inside <detail>
}

// Handler answers one method.
type Handler func(Request) Response

// Server is a fake SOAP service backed by httptest.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]Handler
	requests []Request
}

// New starts a fake service that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{handlers: make(map[string]Handler)}

	r := chi.NewRouter()
	r.Use(middleware.AllowContentType("text/xml"))
	r.Post(Path, s.serve)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Handle registers h for method, replacing any previous handler.
func (s *Server) Handle(method string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

// Return answers method with a fixed return value.
func (s *Server) Return(method, inner string) {
	s.Handle(method, func(Request) Response { return Response{Return: inner} })
}

// Void answers method with no return value.
func (s *Server) Void(method string) {
	s.Handle(method, func(Request) Response { return Response{Void: true} })
}

// Fail answers method with a fault.
func (s *Server) Fail(method, code, msg string) {
	s.Handle(method, func(Request) Response {
		return Response{Fault: &Fault{Code: code, String: msg}}
	})
}

// Requests returns every call received so far, in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent call to method.
func (s *Server) Last(method string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Method == method {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req, err := parseRequest(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Header = r.Header.Clone()

	s.mu.Lock()
	s.requests = append(s.requests, req)
	h, ok := s.handlers[req.Method]
	s.mu.Unlock()

	resp := Response{Fault: &Fault{Code: "soapenv:Client", String: "No such operation '" + req.Method + "'"}}
	if ok {
		resp = h(req)
	}
	write(w, req.Method, resp)
}

func parseRequest(data []byte) (Request, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return Request{}, fmt.Errorf("parse envelope: %w", err)
	}
	env := doc.Root()
	if env == nil || env.Tag != "Envelope" {
		return Request{}, fmt.Errorf("missing Envelope")
	}
	body := env.SelectElement("Body")
	if body == nil || len(body.ChildElements()) == 0 {
		return Request{}, fmt.Errorf("missing Body operation")
	}
	op := body.ChildElements()[0]
	return Request{Method: op.Tag, Params: op.ChildElements()}, nil
}

func write(w http.ResponseWriter, method string, resp Response) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
		if resp.Fault != nil {
			status = http.StatusInternalServerError
		}
	}

	var b strings.Builder
	switch {
	case resp.Raw != "":
		b.WriteString(resp.Raw)
	case resp.Fault != nil:
		b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
		b.WriteString(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"><soapenv:Body><soapenv:Fault>`)
		fmt.Fprintf(&b, "<faultcode>%s</faultcode>", escape(resp.Fault.Code))
		fmt.Fprintf(&b, "<faultstring>%s</faultstring>", escape(resp.Fault.String))
		if resp.Fault.Detail != "" {
			fmt.Fprintf(&b, "<detail><%s/></detail>", resp.Fault.Detail)
		}
		b.WriteString(`</soapenv:Fault></soapenv:Body></soapenv:Envelope>`)
	default:
		b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
		b.WriteString(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"><soapenv:Body>`)
		fmt.Fprintf(&b, `<ns1:%sResponse xmlns:ns1="http://soap.rpc.jira.atlassian.com">`, method)
		fmt.Fprintf(&b, `<rpc:result xmlns:rpc="http://www.w3.org/2003/05/soap-rpc">%sReturn</rpc:result>`, method)
		if !resp.Void {
			fmt.Fprintf(&b, "<%sReturn>%s</%sReturn>", method, resp.Return, method)
		}
		fmt.Fprintf(&b, "</ns1:%sResponse>", method)
		b.WriteString(`</soapenv:Body></soapenv:Envelope>`)
	}

	w.WriteHeader(status)
	io.WriteString(w, b.String())
}

func escape(s string) string {
	var b strings.Builder
	xmlEscaper.WriteString(&b, s)
	return b.String()
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
