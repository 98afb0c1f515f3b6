// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webplugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/multiweb/webroute"
	"github.com/xmidt-org/multiweb/webwire"
)

type ScopeSuite struct {
	suite.Suite
}

func (suite *ScopeSuite) TestIdentity() {
	var (
		s1 = NewScope("a.so", nil, nil)
		s2 = NewScope("a.so", nil, nil)
	)

	suite.Equal("a.so", s1.Path())
	suite.NotEmpty(s1.ID())
	suite.NotEqual(s1.ID(), s2.ID())
	suite.Empty(s1.Instances())
}

func (suite *ScopeSuite) TestLookupPrecedence() {
	var (
		pkg  = Symbols{"Shared": "package", "PackageOnly": 1}
		host = Symbols{"Shared": "host", "HostOnly": 2}
		s    = NewScope("a.so", pkg, host)
	)

	v, err := s.Lookup("Shared")
	suite.NoError(err)
	suite.Equal("package", v)

	v, err = s.Lookup("PackageOnly")
	suite.NoError(err)
	suite.Equal(1, v)

	v, err = s.Lookup("HostOnly")
	suite.NoError(err)
	suite.Equal(2, v)

	var se *SymbolError
	v, err = s.Lookup("Missing")
	suite.Nil(v)
	suite.Require().ErrorAs(err, &se)
	suite.Equal("a.so", se.Path)
	suite.Equal("Missing", se.Symbol)
	suite.ErrorIs(err, ErrSymbolNotFound)
}

func (suite *ScopeSuite) TestLookupArchiveError() {
	var (
		expected = errors.New("expected")
		s        = NewScope("a.so", failingArchive{err: expected}, Symbols{"X": 1})
	)

	// only a missing symbol falls back to the host
	_, err := s.Lookup("X")
	suite.ErrorIs(err, expected)
}

func (suite *ScopeSuite) TestNewConstructors() {
	var (
		handlerFunc = func() webroute.Handler { return &aboutHandler{tenant: "func"} }
		s           = NewScope("a.so", Symbols{
			"Handler":  handlerFunc,
			"Pointer":  &handlerFunc,
			"Any":      func() any { return &aboutHandler{tenant: "any"} },
			"Concrete": func() *aboutHandler { return &aboutHandler{tenant: "concrete"} },
			"WithErr":  func() (webroute.Handler, error) { return routedHandler{}, nil },
		}, nil)
	)

	for _, symbol := range []string{"Handler", "Pointer", "Any", "Concrete", "WithErr"} {
		suite.Run(symbol, func() {
			h, err := s.New(symbol)
			suite.NoError(err)
			suite.NotNil(h)
		})
	}

	instances := s.Instances()
	suite.Require().Len(instances, 5)
	suite.Equal("Handler", instances[0].Symbol)
	suite.Equal("WithErr", instances[4].Symbol)
}

func (suite *ScopeSuite) TestNewInvalid() {
	var (
		expected = errors.New("expected")
		s        = NewScope("a.so", Symbols{
			"Value":       &aboutHandler{},
			"TakesArgs":   func(string) webroute.Handler { return nil },
			"NoResults":   func() {},
			"BadSecond":   func() (webroute.Handler, int) { return nil, 0 },
			"NotHandler":  func() any { return notAHandler{} },
			"NilHandler":  func() webroute.Handler { return nil },
			"NilPointer":  func() *aboutHandler { return nil },
			"Fails":       func() (webroute.Handler, error) { return nil, expected },
			"Panics":      func() webroute.Handler { panic("expected") },
			"NilFunction": (func() webroute.Handler)(nil),
		}, nil)
	)

	testData := map[string]error{
		"Value":       ErrNotConstructor,
		"TakesArgs":   ErrNotConstructor,
		"NoResults":   ErrNotConstructor,
		"BadSecond":   ErrNotConstructor,
		"NotHandler":  ErrNotHandler,
		"NilHandler":  ErrNotHandler,
		"NilPointer":  ErrNotHandler,
		"Fails":       expected,
		"NilFunction": ErrNotConstructor,
		"Missing":     ErrSymbolNotFound,
	}

	for symbol, expectedErr := range testData {
		suite.Run(symbol, func() {
			var se *SymbolError
			h, err := s.New(symbol)
			suite.Nil(h)
			suite.ErrorAs(err, &se)
			suite.ErrorIs(err, expectedErr)
		})
	}

	h, err := s.New("Panics")
	suite.Nil(h)
	suite.Error(err)
	suite.Empty(s.Instances())
}

func (suite *ScopeSuite) TestIsolation() {
	var (
		host = Symbols{"HostHandler": func() webroute.Handler { return &aboutHandler{tenant: "host"} }}
		a    = NewScope("a.so", packageSymbols("a", ""), host)
		b    = NewScope("b.so", packageSymbols("b", ""), host)
	)

	ha, err := a.New("AboutHandler")
	suite.Require().NoError(err)
	hb, err := b.New("AboutHandler")
	suite.Require().NoError(err)

	suite.NotSame(ha, hb)
	suite.Equal("a", ha.(*aboutHandler).tenant)
	suite.Equal("b", hb.(*aboutHandler).tenant)

	// host built-ins are instantiated separately for each scope
	hostA, err := a.New("HostHandler")
	suite.Require().NoError(err)
	hostB, err := b.New("HostHandler")
	suite.Require().NoError(err)
	suite.NotSame(hostA, hostB)

	suite.Len(a.Instances(), 2)
	suite.Len(b.Instances(), 2)
}

func TestScope(t *testing.T) {
	suite.Run(t, new(ScopeSuite))
}

type failingArchive struct {
	err error
}

func (fa failingArchive) Lookup(string) (any, error) {
	return nil, fa.err
}

var _ webwire.ResponseWriter = (*recorder)(nil)
