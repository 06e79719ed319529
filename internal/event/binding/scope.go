package binding

import (
	"reflect"

	"github.com/dshills/evbind/internal/event/handlers"
	"github.com/dshills/evbind/internal/event/ident"
)

// Scope is the declaration registry a binding pass scans.
//
// Producers and consumers are declared into named containers, typically one
// per domain type or package. Containers keep the order in which they were
// first opened and declarations keep the order in which they were made, so
// scanning a scope is deterministic.
//
// A Scope is populated during initialization and is not safe for concurrent
// declaration.
type Scope struct {
	space      *ident.Space
	containers []*Container
	byName     map[string]*Container
}

// NewScope creates an empty scope whose declarations must use identifiers
// from space. A nil space accepts any well-formed identifier.
func NewScope(space *ident.Space) *Scope {
	return &Scope{
		space:  space,
		byName: make(map[string]*Container),
	}
}

// Space returns the identifier space of the scope.
func (s *Scope) Space() *ident.Space {
	return s.space
}

// Container returns the named container, creating it on first use.
// Reopening a container appends to its existing declarations.
func (s *Scope) Container(name string) *Container {
	if c, ok := s.byName[name]; ok {
		return c
	}
	c := &Container{name: name}
	s.byName[name] = c
	s.containers = append(s.containers, c)
	return c
}

// Containers returns the container names in first-use order.
func (s *Scope) Containers() []string {
	names := make([]string, len(s.containers))
	for i, c := range s.containers {
		names[i] = c.name
	}
	return names
}

// Container groups the declarations of one owner.
type Container struct {
	name  string
	decls []declaration
}

// Name returns the container name.
func (c *Container) Name() string {
	return c.name
}

// Len returns the number of declarations made in the container.
func (c *Container) Len() int {
	return len(c.decls)
}

// declaration is one entry of a container, in declaration order.
// Exactly one field is set.
type declaration struct {
	producer *Producer
	consumer *Consumer
	err      error
}

func (c *Container) add(d declaration) {
	c.decls = append(c.decls, d)
}

func (c *Container) qualify(name string) string {
	if c.name == "" {
		return name
	}
	return c.name + "." + name
}

// Producer is a producer declaration: a slot tagged with one identifier.
type Producer struct {
	// Container is the name of the declaring container.
	Container string

	// Name is the slot name within the container.
	Name string

	// ID is the identifier the slot is tagged with.
	ID ident.ID

	// Sender and Args are the argument types the slot's handlers receive.
	Sender reflect.Type
	Args   reflect.Type

	slot  any
	build builder
}

// Qualified returns "Container.Name".
func (p Producer) Qualified() string {
	if p.Container == "" {
		return p.Name
	}
	return p.Container + "." + p.Name
}

// Signature returns the expected handler shape, e.g. "(*post.Post, handlers.Empty)".
func (p Producer) Signature() string {
	return signature(p.Sender, p.Args)
}

// builder turns matched consumers into a commit function that installs the
// typed handler set into the producer's slot, and a release function that
// empties the slot again as long as that set is still the installed one.
type builder func(consumers []Consumer, opts []handlers.SetOption) (commit, release func(), err error)

// Consumer is a consumer declaration: a callable tagged with identifiers.
type Consumer struct {
	// Container is the name of the declaring container.
	Container string

	// Name is the callable name within the container.
	Name string

	// IDs is the tag set, in declaration order.
	IDs []ident.ID

	// Sender and Args are the parameter types of the callable.
	Sender reflect.Type
	Args   reflect.Type

	fn any
}

// Qualified returns "Container.Name".
func (c Consumer) Qualified() string {
	if c.Container == "" {
		return c.Name
	}
	return c.Container + "." + c.Name
}

// consumerKey identifies a callable. Container and name are kept apart so
// that "" + "Program.H1" and "Program" + "H1" stay distinct.
type consumerKey struct {
	container, name string
}

func (c Consumer) key() consumerKey {
	return consumerKey{container: c.Container, name: c.Name}
}

// Signature returns the callable's parameter shape.
func (c Consumer) Signature() string {
	return signature(c.Sender, c.Args)
}

func signature(sender, args reflect.Type) string {
	return "(" + typeName(sender) + ", " + typeName(args) + ")"
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// Event declares slot as the producer for id.
//
// Declaring the same slot twice is a DuplicateProducerTag error reported by
// the binding pass; the slot is then left unbound.
func Event[S, A any](c *Container, name string, id ident.ID, slot *handlers.Slot[S, A]) {
	p := &Producer{
		Container: c.name,
		Name:      name,
		ID:        id,
		Sender:    reflect.TypeFor[S](),
		Args:      reflect.TypeFor[A](),
	}

	switch {
	case name == "":
		c.add(declaration{err: ErrInvalidDeclaration.New("producer in %q has no name", c.name)})
		return
	case slot == nil:
		c.add(declaration{err: ErrInvalidDeclaration.New("producer %s has a nil slot", p.Qualified())})
		return
	}

	p.slot = slot
	p.build = func(consumers []Consumer, opts []handlers.SetOption) (func(), func(), error) {
		hs := make([]handlers.Handler[S, A], 0, len(consumers))
		for _, cons := range consumers {
			fn, err := adapt[S, A](cons)
			if err != nil {
				return nil, nil, err
			}
			hs = append(hs, handlers.Handler[S, A]{Name: cons.Qualified(), Fn: fn})
		}
		set := handlers.NewSet(hs, opts...)
		return func() { slot.Install(set) }, func() { slot.Release(set) }, nil
	}
	c.add(declaration{producer: p})
}

// Handles declares fn as a consumer of every identifier in ids.
//
// The identifier order does not affect binding. An empty tag set, or an
// identifier listed twice, is an InvalidDeclaration error. Declaring the same
// container and name twice is a DuplicateConsumerTag error; the callable is
// then bound to nothing.
func Handles[S, A any](c *Container, name string, fn func(sender S, args A) error, ids ...ident.ID) {
	cons := &Consumer{
		Container: c.name,
		Name:      name,
		IDs:       append([]ident.ID(nil), ids...),
		Sender:    reflect.TypeFor[S](),
		Args:      reflect.TypeFor[A](),
	}

	switch {
	case name == "":
		c.add(declaration{err: ErrInvalidDeclaration.New("consumer in %q has no name", c.name)})
		return
	case fn == nil:
		c.add(declaration{err: ErrInvalidDeclaration.New("consumer %s has a nil callable", cons.Qualified())})
		return
	}

	cons.fn = handlers.Func[S, A](fn)
	c.add(declaration{consumer: cons})
}

// adapt converts a consumer callable to the producer's exact handler shape.
// Identical shapes are used as is; assignable shapes (e.g. a consumer taking
// an interface sender) are called through reflection.
func adapt[S, A any](c Consumer) (handlers.Func[S, A], error) {
	if fn, ok := c.fn.(handlers.Func[S, A]); ok {
		return fn, nil
	}

	v := reflect.ValueOf(c.fn)
	t := v.Type()
	sender, args := reflect.TypeFor[S](), reflect.TypeFor[A]()
	if t.Kind() != reflect.Func || t.NumIn() != 2 || t.NumOut() != 1 ||
		!sender.AssignableTo(t.In(0)) || !args.AssignableTo(t.In(1)) {
		return nil, ErrSignatureMismatch.New("consumer %s %s cannot handle %s",
			c.Qualified(), c.Signature(), signature(sender, args))
	}

	return func(s S, a A) error {
		out := v.Call([]reflect.Value{
			reflect.ValueOf(&s).Elem(),
			reflect.ValueOf(&a).Elem(),
		})
		if err, ok := out[0].Interface().(error); ok {
			return err
		}
		return nil
	}, nil
}
