package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"xdao.co/anchor/addr"
	"xdao.co/anchor/contenthash"
	"xdao.co/anchor/grpcregistry"
	"xdao.co/anchor/registry"
)

// logNotifier writes one line per change notification to stderr, in
// operation-completion order.
type logNotifier struct{}

func (logNotifier) EntrySet(subject addr.Address, category addr.Category, delegate addr.Delegate, hash contenthash.Triple) {
	b58, err := hash.B58String()
	if err != nil {
		b58 = "<invalid>"
	}
	fmt.Fprintf(os.Stderr, "EntrySet subject=%s category=%s delegate=%s hash=%s\n", subject, category, delegate, b58)
}

func (logNotifier) EntryDeleted(subject addr.Address, category addr.Category, remainingVersion uint64) {
	fmt.Fprintf(os.Stderr, "EntryDeleted subject=%s category=%s version=%d\n", subject, category, remainingVersion)
}

func (logNotifier) DelegateChanged(subject addr.Address, category addr.Category, delegate addr.Delegate) {
	fmt.Fprintf(os.Stderr, "DelegateChanged subject=%s category=%s delegate=%s\n", subject, category, delegate)
}

func (logNotifier) CategoryAdded(subject addr.Address, category addr.Category) {
	fmt.Fprintf(os.Stderr, "CategoryAdded subject=%s category=%s\n", subject, category)
}

func (logNotifier) CategoryDeleted(subject addr.Address, category addr.Category) {
	fmt.Fprintf(os.Stderr, "CategoryDeleted subject=%s category=%s\n", subject, category)
}

func main() {
	fs := flag.NewFlagSet("anchor-grpcd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7878", "listen address")
	quiet := fs.Bool("quiet", false, "suppress the stderr event log")

	_ = fs.Parse(os.Args[1:])

	opts := registry.Options{}
	if !*quiet {
		opts.Notifier = logNotifier{}
	}
	reg := registry.New(opts)

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcregistry.RegisterRegistryServer(s, &grpcregistry.Server{Registry: reg})

	fmt.Fprintf(os.Stderr, "anchor-grpcd listening on %s\n", lis.Addr().String())
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
