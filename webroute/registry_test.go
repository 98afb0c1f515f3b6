// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webroute

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RegistrySuite struct {
	suite.Suite
}

func (suite *RegistrySuite) table(h Handler, paths ...string) *Table {
	tb := NewTableBuilder()
	suite.Require().NoError(tb.Add(Descriptor{Paths: paths}, h, ""))
	return tb.Build()
}

func (suite *RegistrySuite) requireResolve(r Resolver, port int, path string) Handler {
	h, err := r.Resolve(port, path)
	suite.Require().NoError(err)
	suite.Require().NotNil(h)
	return h
}

func (suite *RegistrySuite) TestEmpty() {
	r := NewRegistry(ModeTenant)
	suite.Equal(ModeTenant, r.Mode())
	suite.Empty(r.Ports())

	h, err := r.Resolve(8080, "/doc")
	suite.Nil(h)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *RegistrySuite) TestTenantIsolation() {
	r := NewRegistry(ModeTenant)
	r.Publish(8080, suite.table(named("a-about"), "/about"))
	r.Publish(8081, suite.table(named("b-about"), "/about", "/only-b"))

	suite.Equal(named("a-about"), suite.requireResolve(r, 8080, "/about"))
	suite.Equal(named("b-about"), suite.requireResolve(r, 8081, "/about"))
	suite.Equal(named("b-about"), suite.requireResolve(r, 8081, "/only-b"))

	_, err := r.Resolve(8080, "/only-b")
	suite.ErrorIs(err, ErrNotFound)

	_, err = r.Resolve(9999, "/about")
	suite.ErrorIs(err, ErrNotFound)

	suite.Equal([]int{8080, 8081}, r.Ports())
	t, ok := r.Table(8081)
	suite.True(ok)
	suite.Equal(2, t.Len())
	suite.Zero(r.Global().Len())
}

func (suite *RegistrySuite) TestTenantReloadReplaces() {
	r := NewRegistry(ModeTenant)
	r.Publish(8080, suite.table(named("old"), "/about", "/doc"))
	r.Publish(8081, suite.table(named("other"), "/doc"))
	r.Publish(8080, suite.table(named("new"), "/doc", "/register"))

	suite.Equal(named("new"), suite.requireResolve(r, 8080, "/doc"))
	suite.Equal(named("new"), suite.requireResolve(r, 8080, "/register"))

	// paths only present in the previous load are cleared
	_, err := r.Resolve(8080, "/about")
	suite.ErrorIs(err, ErrNotFound)

	// other ports are untouched
	suite.Equal(named("other"), suite.requireResolve(r, 8081, "/doc"))
}

func (suite *RegistrySuite) TestGlobalMerges() {
	r := NewRegistry(ModeGlobal)
	r.Publish(8080, suite.table(named("first"), "/about", "/doc"))
	r.Publish(8081, suite.table(named("second"), "/doc"))

	for _, port := range []int{0, 8080, 8081, 9999} {
		suite.Equal(named("first"), suite.requireResolve(r, port, "/about"))
		suite.Equal(named("second"), suite.requireResolve(r, port, "/doc"))
	}

	suite.Equal(2, r.Global().Len())
	suite.Equal([]int{8080, 8081}, r.Ports())
}

func (suite *RegistrySuite) TestConcurrentPublishAndResolve() {
	const ports = 8
	var (
		r     = NewRegistry(ModeTenant)
		wg    sync.WaitGroup
		start = make(chan struct{})
	)

	for i := 0; i < ports; i++ {
		port := 8000 + i
		wg.Add(2)

		go func() {
			defer wg.Done()
			<-start
			tb := NewTableBuilder()
			for j := 0; j < 50; j++ {
				tb.Add(Descriptor{Paths: []string{fmt.Sprintf("/p%d", j)}}, named(fmt.Sprintf("%d", port)), "")
			}

			r.Publish(port, tb.Build())
		}()

		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 200; j++ {
				// a table is either absent or complete
				if t, ok := r.Table(port); ok {
					suite.Equal(50, t.Len())
				}

				if h, err := r.Resolve(port, "/p0"); err == nil {
					suite.Equal(named(fmt.Sprintf("%d", port)), h)
				}
			}
		}()
	}

	close(start)
	wg.Wait()
	suite.Len(r.Ports(), ports)
}

func TestRegistry(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}
