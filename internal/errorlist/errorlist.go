package errorlist

var maxErrors = 32

// List aggregates skippable errors from a batch.
//
// The normalizer parses thousands of raw rows and must not give up on the
// first malformed one. It must not loop on garbage input either, hence the
// cap.
type List struct {
	errors  []error
	message string
}

type joinedErrors interface {
	Unwrap() []error
}

func New(message string) *List {
	return &List{message: message}
}

func (list List) Error() string {
	return list.message
}

func (list List) Unwrap() []error {
	return list.errors
}

// Append a single error to the list.
//
// Return false when the list is full.
// Panics if error wraps multiple errors. Use Extend() for joined errors.
func (list *List) Append(err error) bool {
	if _, ok := err.(joinedErrors); ok {
		panic("errorlist: cannot append aggregated error")
	}
	if err != nil {
		list.errors = append(list.errors, err)
	}
	return list.Len() < maxErrors
}

// Extend list with wrapped errors.
//
// Return nil if list has free slots.
// Return err as is if it's a single error.
// Return self if list is full.
func (list *List) Extend(err error) error {
	if errs, ok := err.(joinedErrors); ok {
		list.errors = append(list.errors, errs.Unwrap()...)
	} else {
		return err
	}

	if list.Len() >= maxErrors {
		return list
	}
	return nil
}

func (list List) Len() int {
	return len(list.errors)
}
