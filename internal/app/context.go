package app

import "context"

type contextKey struct{}

// SetAppInContext stores the App in context
func SetAppInContext(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, contextKey{}, app)
}

// GetAppFromContext retrieves the App from context, or nil
func GetAppFromContext(ctx context.Context) *App {
	app, _ := ctx.Value(contextKey{}).(*App)
	return app
}

// FromContext is GetAppFromContext for commands that cannot run without one.
func FromContext(ctx context.Context) (*App, error) {
	if a := GetAppFromContext(ctx); a != nil {
		return a, nil
	}
	return nil, ErrNotInitialized
}
