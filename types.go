package godeco

import "reflect"

var (
	callableType  = TypeOf[Callable]()
	fieldInitType = TypeOf[FieldInit]()
	classType     = TypeOf[*Class]()
)

func TypeOf[I any]() reflect.Type {
	var i I
	t := reflect.TypeOf(i)
	if t == nil {
		t = reflect.TypeOf((*I)(nil)).Elem()
	}
	return t
}
