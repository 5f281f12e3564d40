package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Navigator_TakeRedirect_ShouldReturnPendingRouteOnce(t *testing.T) {

	assert := assert.New(t)

	navigator := NewNavigator()
	var notified []Route
	navigator.OnNavigate(func(route Route) { notified = append(notified, route) })

	_, ok := navigator.TakeRedirect()
	assert.False(ok)

	navigator.Navigate(RouteLogin)

	route, ok := navigator.TakeRedirect()
	assert.True(ok)
	assert.Equal(RouteLogin, route)

	_, ok = navigator.TakeRedirect()
	assert.False(ok)
	assert.Equal(RouteLogin, navigator.Current())
	assert.Equal([]Route{RouteLogin}, notified)
}
