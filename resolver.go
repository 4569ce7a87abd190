package invoker

// Resolver supplies values for parameters that are not given explicitly by the caller.
// Implementations must not depend on the order in which they are consulted and must be safe
// for concurrent use if they are shared between calls.
type Resolver interface {
	// Supports reports whether the resolver can supply a value for the parameter.
	Supports(param Parameter) bool
	// Resolve returns the value for the parameter. Only called after Supports returned true.
	Resolve(param Parameter) (any, error)
}

// ResolverFunc builds a Resolver out of a pair of functions.
func ResolverFunc(supports func(Parameter) bool, resolve func(Parameter) (any, error)) Resolver {
	return &resolverFunc{supports: supports, resolve: resolve}
}

type resolverFunc struct {
	supports func(Parameter) bool
	resolve  func(Parameter) (any, error)
}

func (r *resolverFunc) Supports(param Parameter) bool {
	return r.supports(param)
}

func (r *resolverFunc) Resolve(param Parameter) (any, error) {
	return r.resolve(param)
}

// Resolvers is an ordered chain of resolvers. The first resolver supporting a parameter wins, so
// specific resolvers should be registered before general-purpose fallbacks.
type Resolvers struct {
	resolvers []Resolver
}

// Chain creates a Resolvers chain out of the given resolvers, nil resolvers are skipped.
func Chain(resolvers ...Resolver) *Resolvers {
	chain := make([]Resolver, 0, len(resolvers))
	for _, r := range resolvers {
		if r != nil {
			chain = append(chain, r)
		}
	}

	return &Resolvers{resolvers: chain}
}

// Len returns the number of resolvers in the chain.
func (r *Resolvers) Len() int {
	if r == nil {
		return 0
	}
	return len(r.resolvers)
}

func (r *Resolvers) Supports(param Parameter) bool {
	if r == nil {
		return false
	}

	for _, resolver := range r.resolvers {
		if resolver.Supports(param) {
			return true
		}
	}

	return false
}

// Resolve returns the value produced by the first resolver supporting the parameter.
// Returns an *UnresolvedParameterError if none supports it.
func (r *Resolvers) Resolve(param Parameter) (any, error) {
	if r == nil {
		return nil, unresolved(param)
	}

	for _, resolver := range r.resolvers {
		if !resolver.Supports(param) {
			continue
		}

		return resolver.Resolve(param)
	}

	return nil, unresolved(param)
}
