package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"xdao.co/anchor/addr"
	"xdao.co/anchor/contenthash"
	"xdao.co/anchor/deriv"
	"xdao.co/anchor/grpcregistry"
	"xdao.co/anchor/keys"
	"xdao.co/anchor/registry"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "derive":
		return cmdDerive(args[1:], out, errOut)
	case "derive2":
		return cmdDerive2(args[1:], out, errOut)
	case "hash":
		return cmdHash(args[1:], out, errOut)
	case "cid":
		return cmdCID(args[1:], out, errOut)
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "create", "update", "clear", "transfer", "category", "get":
		return cmdRemote(args[0], args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "anchor: content-metadata registry CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  anchor derive --origin <hex> --nonce <n>")
	fmt.Fprintln(w, "  anchor derive2 --origin <hex> --salt <64hex> (--init-digest <64hex> | --init-code <hex>)")
	fmt.Fprintln(w, "  anchor hash sum <file>")
	fmt.Fprintln(w, "  anchor hash decode <b58>")
	fmt.Fprintln(w, "  anchor cid <b58>")
	fmt.Fprintln(w, "  anchor key addr --seed-hex <64hex> [--account <name>]")
	fmt.Fprintln(w, "  anchor create --server <addr> --caller <hex> --subject <hex> --hash <b58> [--nonce <n> | --salt <64hex> --init-digest <64hex>]")
	fmt.Fprintln(w, "  anchor update --server <addr> --caller <hex> --subject <hex> --hash <b58> [--category <label>]")
	fmt.Fprintln(w, "  anchor clear --server <addr> --caller <hex> --subject <hex> [--category <label>]")
	fmt.Fprintln(w, "  anchor transfer --server <addr> --caller <hex> --subject <hex> --to <hex|public> [--category <label>]")
	fmt.Fprintln(w, "  anchor category --server <addr> --caller <hex> --subject <hex> --label <name> (--add | --remove)")
	fmt.Fprintln(w, "  anchor get --server <addr> --subject <hex> [--category <label>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - --category takes a human-readable label; the registry keys on its keccak-256 hash")
	fmt.Fprintln(w, "  - omit --category for the default (deployer) category")
}

func cmdDerive(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("derive", flag.ContinueOnError)
	fs.SetOutput(errOut)
	origin := fs.String("origin", "", "originator address (hex)")
	nonce := fs.Uint64("nonce", 0, "deployment sequence number")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	a, err := addr.AddressFromHex(*origin)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	derived, err := deriv.ContractAddress(a, *nonce)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintln(out, derived.Hex())
	return 0
}

func cmdDerive2(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("derive2", flag.ContinueOnError)
	fs.SetOutput(errOut)
	origin := fs.String("origin", "", "originator address (hex)")
	saltHex := fs.String("salt", "", "32-byte salt (hex)")
	digestHex := fs.String("init-digest", "", "32-byte init-code digest (hex)")
	codeHex := fs.String("init-code", "", "init code (hex); hashed when --init-digest is absent")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	a, err := addr.AddressFromHex(*origin)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	salt, err := word32(*saltHex)
	if err != nil {
		fmt.Fprintln(errOut, "salt:", err)
		return 2
	}
	var digest [32]byte
	switch {
	case *digestHex != "":
		digest, err = word32(*digestHex)
		if err != nil {
			fmt.Fprintln(errOut, "init-digest:", err)
			return 2
		}
	case *codeHex != "":
		code, err := hex.DecodeString(strings.TrimPrefix(*codeHex, "0x"))
		if err != nil {
			fmt.Fprintln(errOut, "init-code:", err)
			return 2
		}
		digest = deriv.Keccak256(code)
	default:
		fmt.Fprintln(errOut, "one of --init-digest or --init-code is required")
		return 2
	}
	fmt.Fprintln(out, deriv.SaltedAddress(a, salt, digest).Hex())
	return 0
}

func cmdHash(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "usage: anchor hash sum <file> | anchor hash decode <b58>")
		return 2
	}
	switch args[0] {
	case "sum":
		data, err := os.ReadFile(args[1])
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		t, err := contenthash.Sum(data)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		b58, err := t.B58String()
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintln(out, b58)
		return 0
	case "decode":
		t, err := contenthash.DecodeB58(args[1])
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintf(out, "code: 0x%x\nlength: %d\ndigest: %x\n", t.Code, t.Length, t.Digest[:t.Length])
		return 0
	default:
		fmt.Fprintf(errOut, "unknown hash subcommand: %s\n", args[0])
		return 2
	}
}

func cmdCID(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "usage: anchor cid <b58>")
		return 2
	}
	t, err := contenthash.DecodeB58(args[0])
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	id, err := t.CID()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintln(out, id.String())
	return 0
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) < 1 || args[0] != "addr" {
		fmt.Fprintln(errOut, "usage: anchor key addr --seed-hex <64hex> [--account <name>]")
		return 2
	}
	fs := flag.NewFlagSet("key addr", flag.ContinueOnError)
	fs.SetOutput(errOut)
	seedHex := fs.String("seed-hex", "", "32-byte ed25519 seed (hex)")
	account := fs.String("account", "", "derive an account-specific identity from the seed")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	seed, err := hex.DecodeString(*seedHex)
	if err != nil {
		fmt.Fprintln(errOut, "seed-hex:", err)
		return 2
	}
	if *account != "" {
		seed, err = keys.DeriveAccountSeed(seed, *account)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 2
		}
	}
	a, err := keys.AddressFromSeed(seed)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	fmt.Fprintln(out, a.Hex())
	return 0
}

func cmdRemote(op string, args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet(op, flag.ContinueOnError)
	fs.SetOutput(errOut)
	server := fs.String("server", "127.0.0.1:7878", "registry daemon address")
	callerHex := fs.String("caller", "", "caller address (hex)")
	subjectHex := fs.String("subject", "", "subject address (hex)")
	hashB58 := fs.String("hash", "", "content hash (base58 multihash)")
	category := fs.String("category", "", "category label (empty for default)")
	label := fs.String("label", "", "category label for category management")
	to := fs.String("to", "", "new delegate (hex or \"public\")")
	nonce := fs.Uint64("nonce", 0, "sequential-nonce proof")
	nonceSet := false
	saltHex := fs.String("salt", "", "salted-digest proof: 32-byte salt (hex)")
	digestHex := fs.String("init-digest", "", "salted-digest proof: init-code digest (hex)")
	add := fs.Bool("add", false, "approve the category")
	remove := fs.Bool("remove", false, "revoke the category")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "nonce" {
			nonceSet = true
		}
	})

	subject, err := addr.AddressFromHex(*subjectHex)
	if err != nil {
		fmt.Fprintln(errOut, "subject:", err)
		return 2
	}
	cat := addr.DefaultCategory()
	if *category != "" {
		cat = addr.CategoryFromLabel(*category)
	}

	client, err := grpcregistry.Dial(*server, grpcregistry.DialOptions{Timeout: 5 * time.Second})
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()
	client.Timeout = 5 * time.Second

	if op == "get" {
		st, err := client.Entry(subject, cat)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		if !st.Present {
			fmt.Fprintf(out, "absent (version %d)\n", st.Version)
			return 0
		}
		b58, err := st.Hash.B58String()
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintf(out, "hash: %s\ndelegate: %s\nselfAttested: %v\nversion: %d\n", b58, st.Delegate, st.SelfAttested, st.Version)
		return 0
	}

	caller, err := addr.AddressFromHex(*callerHex)
	if err != nil {
		fmt.Fprintln(errOut, "caller:", err)
		return 2
	}

	switch op {
	case "create":
		hash, err := contenthash.DecodeB58(*hashB58)
		if err != nil {
			fmt.Fprintln(errOut, "hash:", err)
			return 2
		}
		var proof registry.Proof
		switch {
		case *saltHex != "":
			salt, err := word32(*saltHex)
			if err != nil {
				fmt.Fprintln(errOut, "salt:", err)
				return 2
			}
			digest, err := word32(*digestHex)
			if err != nil {
				fmt.Fprintln(errOut, "init-digest:", err)
				return 2
			}
			proof = registry.SaltProof{Salt: salt, InitDigest: digest}
		case nonceSet:
			proof = registry.NonceProof(*nonce)
		}
		st, err := client.Create(caller, subject, hash, proof)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintf(out, "created (version %d, delegate %s)\n", st.Version, st.Delegate)
	case "update":
		hash, err := contenthash.DecodeB58(*hashB58)
		if err != nil {
			fmt.Fprintln(errOut, "hash:", err)
			return 2
		}
		st, err := client.Update(caller, subject, cat, hash)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintf(out, "updated (version %d)\n", st.Version)
	case "clear":
		version, err := client.Clear(caller, subject, cat)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintf(out, "cleared (version %d)\n", version)
	case "transfer":
		delegate, err := addr.ParseDelegate(*to)
		if err != nil {
			fmt.Fprintln(errOut, "to:", err)
			return 2
		}
		d, err := client.TransferDelegate(caller, subject, cat, delegate)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintf(out, "delegate: %s\n", d)
	case "category":
		if *label == "" || *add == *remove {
			fmt.Fprintln(errOut, "category requires --label and exactly one of --add/--remove")
			return 2
		}
		c := addr.CategoryFromLabel(*label)
		if *add {
			err = client.AddCategory(caller, subject, c)
		} else {
			err = client.RemoveCategory(caller, subject, c)
		}
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintf(out, "category %s: %s\n", c, map[bool]string{true: "approved", false: "revoked"}[*add])
	}
	return 0
}

func word32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, fmt.Errorf("must be 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}
