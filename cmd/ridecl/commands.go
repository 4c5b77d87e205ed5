// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"go.e43.eu/ri"
	"go.e43.eu/ri/internal/decl"
	"go.e43.eu/ri/internal/typeinfo"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	nameColor = color.New(color.FgCyan)
)

type session struct {
	ctx      *ri.Context
	opts     ri.Options
	out      io.Writer
	done     bool
	failures int
}

func (s *session) fail(err error) {
	s.failures++
	errColor.Fprintf(s.out, "error: %v\n", err)
}

type command struct {
	name    string
	usage   string
	help    string
	minArgs int
	run     func(s *session, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"decl", "<declaration>", "parse an inline declaration", 1, (*session).decl},
		{"declare", "<name> <type>", "declare name in the dictionary", 2, (*session).declare},
		{"find", "<name>", "show the declaration in effect for name", 1, (*session).find},
		{"push", "", "save the dictionary", 0, (*session).push},
		{"pop", "", "restore the last saved dictionary", 0, (*session).pop},
		{"release", "", "remove all declarations which are not defaults", 0, (*session).release},
		{"samples", "<n>", "set the number of color samples", 1, (*session).samples},
		{"param", "<name> <vertices> [values...]", "build a parameter for a polygon of the given size", 2, (*session).param},
		{"uri", "<text>", "parse a URI reference", 1, (*session).uri},
		{"resolve", "<base> <ref>", "resolve ref against base", 2, (*session).resolve},
		{"dots", "<path>", "remove dot segments from a path", 1, (*session).dots},
		{"tokens", "", "list the interned names", 0, (*session).tokens},
		{"filters", "", "list the built-in filter functions", 0, (*session).filters},
		{"help", "", "show this list", 0, (*session).help},
		{"quit", "", "leave", 0, (*session).quit},
	}
}

func (s *session) printDecl(d ri.Declaration) {
	nameColor.Fprint(s.out, d.Name())
	fmt.Fprintf(s.out, ": %s", d.Spec())
	if d.IsDefault() {
		fmt.Fprint(s.out, " (default)")
	}
	if d.IsInline() {
		fmt.Fprint(s.out, " (inline)")
	}
	fmt.Fprintf(s.out, ", %d components per element\n", d.Components(s.ctx.ColorSamples()))
}

func (s *session) decl(args []string) error {
	d, err := decl.ParseInline(s.ctx.Interner(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	s.printDecl(d)
	return nil
}

func (s *session) declare(args []string) error {
	if _, err := s.ctx.Declare(args[0], strings.Join(args[1:], " ")); err != nil {
		return err
	}
	d, _ := s.ctx.Find(args[0])
	s.printDecl(d)
	return nil
}

func (s *session) find(args []string) error {
	d, ok := s.ctx.Find(args[0])
	if !ok {
		return errors.Errorf("%q is not declared", args[0])
	}
	s.printDecl(d)
	return nil
}

func (s *session) push(args []string) error {
	s.ctx.Push()
	return nil
}

func (s *session) pop(args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || !errors.Is(e, ri.ErrStateMisuse) {
				panic(r)
			}
			err = e
		}
	}()
	s.ctx.Pop()
	return nil
}

func (s *session) release(args []string) error {
	fmt.Fprintf(s.out, "released %d declarations\n", s.ctx.Release())
	return nil
}

func (s *session) samples(args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	return s.ctx.SetColorSamples(n)
}

func parseValues(bt typeinfo.BasicType, words []string) (interface{}, error) {
	switch bt {
	case typeinfo.BasicFloat:
		out := make([]float32, len(words))
		for i, w := range words {
			f, err := strconv.ParseFloat(w, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "value %d", i)
			}
			out[i] = float32(f)
		}
		return out, nil
	case typeinfo.BasicInteger:
		out := make([]int32, len(words))
		for i, w := range words {
			v, err := strconv.ParseInt(w, 0, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "value %d", i)
			}
			out[i] = int32(v)
		}
		return out, nil
	case typeinfo.BasicString:
		return words, nil
	default:
		return nil, errors.Errorf("values of type %s cannot be written here", bt)
	}
}

func (s *session) param(args []string) error {
	name := args[0]
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		return errors.Errorf("bad vertex count %q", args[1])
	}

	d, ok := s.ctx.Find(name)
	if !ok {
		if d, err = decl.ParseInline(s.ctx.Interner(), name); err != nil {
			return err
		}
	}

	var value interface{}
	if len(args) > 2 {
		if value, err = parseValues(d.BasicType(), args[2:]); err != nil {
			return err
		}
	}

	counts := ri.Counts{Vertices: n, Corners: n, Facets: 1, FaceVertices: n, FaceCorners: n}
	l, err := s.ctx.Params(counts, ri.P(name, value))
	if err != nil {
		return err
	}

	p := l.At(0)
	want := p.Declaration().ComponentCount(counts, s.ctx.ColorSamples())
	nameColor.Fprint(s.out, p.Declaration().FullName())
	fmt.Fprintf(s.out, ": %d elements, %d components, %s\n", p.ArrayElementCount(), want,
		humanize.IBytes(uint64(p.Declaration().ByteSize(counts, s.ctx.ColorSamples()))))
	switch {
	case p.IsEmpty():
		fmt.Fprintln(s.out, "  (no value)")
	case p.Floats() != nil:
		fmt.Fprintf(s.out, "  %v\n", p.Floats())
	case p.Ints() != nil:
		fmt.Fprintf(s.out, "  %v\n", p.Ints())
	default:
		fmt.Fprintf(s.out, "  %q\n", p.Strings())
	}
	return nil
}

func (s *session) uri(args []string) error {
	u := ri.ParseURI(args[0])
	if err := u.Err(); err != nil {
		return err
	}

	row := func(k string, present bool, v string) {
		if present {
			fmt.Fprintf(s.out, "  %-9s %q\n", k, v)
		}
	}
	fmt.Fprintf(s.out, "%s\n", u)
	row("scheme", u.HasScheme(), u.Scheme())
	row("authority", u.HasAuthority(), u.Authority())
	row("userinfo", u.HasUserInfo(), u.UserInfo())
	if u.HasAuthority() {
		fmt.Fprintf(s.out, "  %-9s %q (%s)\n", "host", u.Host(), u.HostKind())
	}
	row("port", u.HasPort(), u.Port())
	fmt.Fprintf(s.out, "  %-9s %q (%s)\n", "path", u.Path(), u.PathKind())
	row("query", u.HasQuery(), u.Query())
	row("fragment", u.HasFragment(), u.Fragment())
	return nil
}

func (s *session) resolve(args []string) error {
	r, err := ri.NewResolver(args[0], s.opts.StrictURI, 1)
	if err != nil {
		return err
	}
	out, err := r.ResolveString(args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, out)
	return nil
}

func (s *session) dots(args []string) error {
	fmt.Fprintln(s.out, ri.RemoveDotSegments(args[0]))
	return nil
}

func (s *session) tokens(args []string) error {
	in := s.ctx.Interner()
	var names []string
	in.Each(func(_ ri.Token, name string) {
		names = append(names, name)
	})
	sort.Strings(names)

	fmt.Fprintf(s.out, "%d names, %s\n", in.Len(), humanize.IBytes(uint64(in.Bytes())))
	for _, n := range names {
		fmt.Fprintf(s.out, "  %s\n", n)
	}
	return nil
}

func (s *session) filters(args []string) error {
	for _, n := range ri.FilterNames() {
		fmt.Fprintln(s.out, n)
	}
	return nil
}

func (s *session) help(args []string) error {
	for _, c := range commands {
		use := c.name
		if c.usage != "" {
			use += " " + c.usage
		}
		fmt.Fprintf(s.out, "  %-40s %s\n", use, c.help)
	}
	return nil
}

func (s *session) quit(args []string) error {
	s.done = true
	return nil
}
