package main

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/a-peyrard/godeco"
	"github.com/a-peyrard/godeco/config"
	"github.com/rs/zerolog"
)

// -------------------------------------- PLAYGROUND CODE --------------------------------------
// fixme: we should remove this at some point, this is just a playground to illustrate
//  how decorators and metadata consumers interact with the engine

var serialized = godeco.NewSymbol("serialized fields")

// serializable records the decorated field into the class metadata, so a
// serializer can discover fields without touching the class surface.
func serializable(_ reflect.Value, ctx *godeco.Context) (reflect.Value, error) {
	var fields []string
	if raw, found := ctx.Metadata.Get(serialized); found {
		fields = raw.([]string)
	}
	next := make([]string, len(fields), len(fields)+1)
	copy(next, fields)
	ctx.Metadata.Set(serialized, append(next, ctx.Name))
	return reflect.Value{}, nil
}

func logged(logger *zerolog.Logger) godeco.Decorator {
	return func(value reflect.Value, ctx *godeco.Context) (reflect.Value, error) {
		inner := value.Interface().(godeco.Callable)
		name := ctx.Name
		return reflect.ValueOf(godeco.Callable(func(self *godeco.Instance, args ...any) any {
			logger.Info().Str("method", name).Msg("invoked")
			return inner(self, args...)
		})), nil
	}
}

func newLogger(level string) (*zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", level, err)
	}
	var writer io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	mainLogger := zerolog.New(writer).
		Level(parsed).
		With().
		Timestamp().
		Logger()

	return &mainLogger, nil
}

func main() {
	conf, err := config.Load[config.Engine](config.WithEnvPrefix("GODECO"))
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(conf.LogLevel)
	if err != nil {
		fmt.Printf("failed to build logger: %v\n", err)
		os.Exit(1)
	}

	registry := godeco.NewRegistry()
	registry.Subscribe(func(cls *godeco.Class, meta *godeco.Metadata) {
		logger.Info().
			Str("class", cls.Name()).
			Int("ownKeys", len(meta.KeysOwn())).
			Msg("metadata published")
	})

	definer := godeco.NewDefiner(
		godeco.WithRegistry(registry),
		godeco.WithLogger(logger),
	)

	shape := definer.MustDefine("Shape",
		godeco.Field("x", godeco.Value(0), godeco.Decorate(serializable)),
		godeco.Field("y", godeco.Value(0), godeco.Decorate(serializable)),
		godeco.Method("describe", func(self *godeco.Instance, args ...any) any {
			return "a shape"
		}),
	)

	widget := definer.MustDefine("Widget",
		godeco.Extends(shape),
		godeco.Field("title", godeco.Value("untitled"), godeco.Decorate(serializable)),
		godeco.Method("describe", func(self *godeco.Instance, args ...any) any {
			title, _ := self.Field("title")
			return fmt.Sprintf("widget %q", title)
		}, godeco.Decorate(logged(logger))),
	)

	instance := widget.New()
	description, _ := instance.Call("describe")
	logger.Info().Msgf("describe() = %v", description)

	// a serializer discovering fields purely through published metadata
	fields, _ := widget.Metadata().Get(serialized)
	logger.Info().Msgf("serializable fields of %s: %v", widget.Name(), fields)
	baseFields, _ := shape.Metadata().Get(serialized)
	logger.Info().Msgf("serializable fields of %s: %v", shape.Name(), baseFields)
}
