package guard

import "context"

// Navigator sends the visitor to another page.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

type noopNavigator struct{}

func (noopNavigator) Navigate(string) {}

type navigatorKey struct{}

// WithNavigator binds nav to ctx.
func WithNavigator(ctx context.Context, nav Navigator) context.Context {
	return context.WithValue(ctx, navigatorKey{}, nav)
}

// NavigatorFromContext returns the bound navigator, or one that does nothing.
func NavigatorFromContext(ctx context.Context) Navigator {
	if nav, ok := boundNavigator(ctx); ok {
		return nav
	}
	return noopNavigator{}
}

func boundNavigator(ctx context.Context) (Navigator, bool) {
	if ctx == nil {
		return nil, false
	}
	nav, ok := ctx.Value(navigatorKey{}).(Navigator)
	return nav, ok && nav != nil
}
