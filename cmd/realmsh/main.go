package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dop251/goja"

	realmruntime "github.com/realmkit/realm-runtime"
	"github.com/realmkit/realm-runtime/engine"
	"github.com/realmkit/realm-runtime/realm"
	"github.com/realmkit/realm-runtime/transfer"
)

func main() {
	var (
		script      = flag.String("eval", "", "Script to evaluate in the source realm")
		flagsStr    = flag.String("transfer", "", "Transfer flags (comma-separated: copy,externalCopy,reference,promise)")
		from        = flag.String("from", "left", "Source realm (left or right)")
		wait        = flag.Duration("wait", 2*time.Second, "How long to wait for a bridged promise to settle")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *script == "" {
		fmt.Fprintln(os.Stderr, "Usage: realmsh -eval <script> [-transfer copy,promise] [-from left|right]")
		fmt.Fprintln(os.Stderr, "       realmsh -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*script, *flagsStr, *from, *wait); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(script, flagsStr, from string, wait time.Duration) error {
	sh, err := newShell()
	if err != nil {
		return err
	}
	defer sh.close()

	var flags []string
	if flagsStr != "" {
		flags = strings.Split(flagsStr, ",")
	}

	src, dst := sh.pair(from)
	fmt.Printf("Evaluating in %s: %s\n", src.Name(), script)
	out, err := sh.transfer(from, script, flags, wait)
	if err != nil {
		return err
	}
	fmt.Printf("Materialized in %s: %s\n", dst.Name(), out)
	return nil
}

// shell owns the two realms values move between.
type shell struct {
	left  *realm.Realm
	right *realm.Realm
}

func newShell() (*shell, error) {
	return &shell{
		left:  realm.New(realm.Config{Name: "left"}),
		right: realm.New(realm.Config{Name: "right"}),
	}, nil
}

func (s *shell) close() {
	s.left.Close()
	s.right.Close()
}

// pair resolves a source name to (source, destination).
func (s *shell) pair(from string) (*realm.Realm, *realm.Realm) {
	if from == "right" {
		return s.right, s.left
	}
	return s.left, s.right
}

const renderFn = `(function(v) {
	if (v === undefined) return "undefined";
	try {
		var j = JSON.stringify(v);
		if (j !== undefined) return j;
	} catch (e) {}
	return String(v);
})`

// transfer evaluates script in the source realm, classifies the completion
// value per flags and materializes it in the other realm, rendered as a
// display string. A bridged promise is awaited for up to wait.
func (s *shell) transfer(from, script string, flags []string, wait time.Duration) (string, error) {
	src, dst := s.pair(from)

	raw := make(map[string]any, len(flags))
	for _, f := range flags {
		raw[strings.TrimSpace(f)] = true
	}
	o, err := transfer.ParseOptions(raw, transfer.KindUnset)
	if err != nil {
		return "", err
	}

	var tr realmruntime.Transferable
	err = src.Do(func(vm *goja.Runtime) error {
		v, err := vm.RunString(script)
		if err != nil {
			return err
		}
		tr, err = transfer.TransferOut(src, v, o)
		return err
	})
	if err != nil {
		return "", err
	}

	var rendered string
	settled := make(chan string, 1)
	isPromise := false
	err = dst.Do(func(vm *goja.Runtime) error {
		local, err := tr.TransferIn(dst)
		if err != nil {
			return err
		}

		fmtVal, err := vm.RunString(renderFn)
		if err != nil {
			return err
		}
		format, _ := goja.AssertFunction(fmtVal)
		render := func(v goja.Value) string {
			out, err := format(goja.Undefined(), v)
			if err != nil {
				return v.String()
			}
			return out.String()
		}

		if _, ok := engine.AsPromise(local); ok {
			isPromise = true
			vm.Set("__v", local)
			vm.Set("__deliver", func(s string) {
				select {
				case settled <- s:
				default:
				}
			})
			vm.Set("__fmt", fmtVal)
			_, err = vm.RunString(`__v.then(
				function(x) { __deliver("resolved: " + __fmt(x)); },
				function(e) { __deliver("rejected: " + ((e && e.message) ? e.message : String(e))); })`)
			return err
		}

		rendered = render(local)
		return nil
	})
	if err != nil {
		return "", err
	}

	if isPromise {
		select {
		case out := <-settled:
			return out, nil
		case <-time.After(wait):
			return fmt.Sprintf("pending (no settlement within %s)", wait), nil
		}
	}
	return rendered, nil
}
