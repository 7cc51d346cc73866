package main

import (
	"fmt"

	"github.com/stonefield/jiraSOAP/core/entity"
	"github.com/stonefield/jiraSOAP/core/formatter"
)

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)

func viewOf[T any](s *entity.Schema[T], hidden ...string) formatter.View {
	return formatter.View{Name: s.Name(), Columns: s.WireNames(), Hidden: hidden}
}

func (rt *runtime) formatter() (formatter.Formatter, formatter.FormatOptions, error) {
	f, err := formatter.Lookup(rt.settings().Output.Format)
	if err != nil {
		return nil, formatter.FormatOptions{}, err
	}
	return f, formatter.FormatOptions{Columns: columns, NoHeader: noHeader, MaxWidth: 60}, nil
}

func printList[T any](rt *runtime, s *entity.Schema[T], items []*T, hidden ...string) error {
	f, opts, err := rt.formatter()
	if err != nil {
		return err
	}
	return f.FormatList(rt.out, viewOf(s, hidden...), entity.Records(s, items), opts)
}

func printRecord[T any](rt *runtime, s *entity.Schema[T], item *T, hidden ...string) error {
	f, opts, err := rt.formatter()
	if err != nil {
		return err
	}
	return f.FormatRecord(rt.out, viewOf(s, hidden...), entity.Record(s, item), opts)
}

func printDone(rt *runtime, format string, args ...any) {
	fmt.Fprintf(rt.out, "%s %s\n", checkMark, fmt.Sprintf(format, args...))
}
