package command

import (
	"strconv"

	"github.com/tidwall/sjson"

	"github.com/dshills/caide/internal/app"
	"github.com/dshills/caide/internal/feature"
	"github.com/dshills/caide/internal/transport"
)

// Dispatch adapts the workspace commands to the native-messaging
// transport. The returned handler resolves each request against the
// workspace root carried in the request itself, so a single server can
// serve several workspaces.
func Dispatch(verbosity app.Verbosity, reg *feature.Registry) transport.Handler {
	return func(req transport.Request) (string, error) {
		switch req.Action {
		case "init":
			if err := Init(verbosity, req.Root); err != nil {
				return "", err
			}
			return `{"initialized":true}`, nil

		case "problem":
			name := req.Args.Get("name").String()
			if name == "" {
				return "", app.Throw("problem request needs a name")
			}
			id, err := AddProblem(verbosity, req.Root, name, req.Args.Get("type").String(), reg)
			if err != nil {
				return "", err
			}
			return sjson.Set("{}", "id", id)

		case "checkout":
			id := req.Args.Get("id").String()
			if id == "" {
				return "", app.Throw("checkout request needs an id")
			}
			if err := Checkout(verbosity, req.Root, id, reg); err != nil {
				return "", err
			}
			return sjson.Set("{}", "id", id)

		case "list":
			ids, err := List(verbosity, req.Root)
			if err != nil {
				return "", err
			}
			out := "[]"
			for _, id := range ids {
				out, err = sjson.Set(out, "-1", id)
				if err != nil {
					return "", err
				}
			}
			return out, nil

		case "active":
			id, err := ActiveProblem(verbosity, req.Root)
			if err != nil {
				return "", err
			}
			return sjson.Set("{}", "id", id)

		case "read":
			id := req.Args.Get("id").String()
			if id == "" {
				return "", app.Throw("read request needs an id")
			}
			p, err := ReadProblem(verbosity, req.Root, id)
			if err != nil {
				return "", err
			}
			out, err := sjson.Set("{}", "id", p.ID)
			if err != nil {
				return "", err
			}
			if out, err = sjson.Set(out, "name", p.Name); err != nil {
				return "", err
			}
			if out, err = sjson.Set(out, "type", p.Type.Encode()); err != nil {
				return "", err
			}
			tolerance := strconv.FormatFloat(p.FloatTolerance, 'g', -1, 64)
			return sjson.Set(out, "double_precision", tolerance)

		case "archive":
			id := req.Args.Get("id").String()
			if id == "" {
				return "", app.Throw("archive request needs an id")
			}
			if err := Archive(verbosity, req.Root, id); err != nil {
				return "", err
			}
			return sjson.Set("{}", "id", id)

		default:
			return "", app.Throw("unknown action %q", req.Action)
		}
	}
}
