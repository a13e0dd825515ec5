package grpcregistry

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"xdao.co/anchor/addr"
	"xdao.co/anchor/contenthash"
	"xdao.co/anchor/registry"
)

// EntryState is the client-side view of one (subject, category) key.
type EntryState struct {
	Present      bool
	Hash         contenthash.Triple
	Delegate     addr.Delegate
	SelfAttested bool
	Version      uint64
}

// Client drives a remote Registry service with the registry's own types.
// RPC failures carrying a mapped status code come back as *registry.Error,
// so IsKind works across the wire.
type Client struct {
	cc     *grpc.ClientConn
	client RegistryClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewRegistryClient(cc)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}

func (c *Client) Create(caller, subject addr.Address, hash contenthash.Triple, proof registry.Proof) (EntryState, error) {
	fields := map[string]interface{}{
		"caller":  caller.Hex(),
		"subject": subject.Hex(),
	}
	if err := hashInto(fields, hash); err != nil {
		return EntryState{}, err
	}
	if err := proofInto(fields, proof); err != nil {
		return EntryState{}, err
	}
	return c.entryCall(c.client.Create, fields)
}

func (c *Client) Update(caller, subject addr.Address, category addr.Category, hash contenthash.Triple) (EntryState, error) {
	fields := map[string]interface{}{
		"caller":   caller.Hex(),
		"subject":  subject.Hex(),
		"category": category.String(),
	}
	if err := hashInto(fields, hash); err != nil {
		return EntryState{}, err
	}
	return c.entryCall(c.client.Update, fields)
}

func (c *Client) Clear(caller, subject addr.Address, category addr.Category) (uint64, error) {
	reply, err := c.call(c.client.Clear, map[string]interface{}{
		"caller":   caller.Hex(),
		"subject":  subject.Hex(),
		"category": category.String(),
	})
	if err != nil {
		return 0, err
	}
	v, _ := numberField(reply, "version")
	return uint64(v), nil
}

func (c *Client) TransferDelegate(caller, subject addr.Address, category addr.Category, delegate addr.Delegate) (addr.Delegate, error) {
	reply, err := c.call(c.client.TransferDelegate, map[string]interface{}{
		"caller":   caller.Hex(),
		"subject":  subject.Hex(),
		"category": category.String(),
		"delegate": delegate.String(),
	})
	if err != nil {
		return addr.NoDelegate(), err
	}
	return delegateFromReply(reply)
}

func (c *Client) AddCategory(caller, subject addr.Address, category addr.Category) error {
	_, err := c.call(c.client.AddCategory, map[string]interface{}{
		"caller":   caller.Hex(),
		"subject":  subject.Hex(),
		"category": category.String(),
	})
	return err
}

func (c *Client) RemoveCategory(caller, subject addr.Address, category addr.Category) error {
	_, err := c.call(c.client.RemoveCategory, map[string]interface{}{
		"caller":   caller.Hex(),
		"subject":  subject.Hex(),
		"category": category.String(),
	})
	return err
}

func (c *Client) Entry(subject addr.Address, category addr.Category) (EntryState, error) {
	return c.entryCall(c.client.GetEntry, map[string]interface{}{
		"subject":  subject.Hex(),
		"category": category.String(),
	})
}

func (c *Client) DelegateOf(subject addr.Address, category addr.Category) (addr.Delegate, error) {
	reply, err := c.call(c.client.GetDelegate, map[string]interface{}{
		"subject":  subject.Hex(),
		"category": category.String(),
	})
	if err != nil {
		return addr.NoDelegate(), err
	}
	return delegateFromReply(reply)
}

func (c *Client) Version(subject addr.Address, category addr.Category) (uint64, error) {
	reply, err := c.call(c.client.GetVersion, map[string]interface{}{
		"subject":  subject.Hex(),
		"category": category.String(),
	})
	if err != nil {
		return 0, err
	}
	v, _ := numberField(reply, "version")
	return uint64(v), nil
}

func (c *Client) CategoryApproved(subject addr.Address, category addr.Category) (bool, error) {
	reply, err := c.call(c.client.GetCategoryApproval, map[string]interface{}{
		"subject":  subject.Hex(),
		"category": category.String(),
	})
	if err != nil {
		return false, err
	}
	return boolField(reply, "approved"), nil
}

func (c *Client) Deployer(subject addr.Address) (addr.Address, bool, error) {
	reply, err := c.call(c.client.GetDeployer, map[string]interface{}{
		"subject": subject.Hex(),
	})
	if err != nil {
		return addr.Address{}, false, err
	}
	if !boolField(reply, "present") {
		return addr.Address{}, false, nil
	}
	a, err := addressField(reply, "deployer")
	if err != nil {
		return addr.Address{}, false, err
	}
	return a, true, nil
}

type rpc func(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

func (c *Client) call(method rpc, fields map[string]interface{}) (*structpb.Struct, error) {
	if c == nil || c.client == nil {
		return nil, fmt.Errorf("grpcregistry: client is not connected")
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("grpcregistry: encode request: %w", err)
	}
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := method(ctx, in)
	if err != nil {
		return nil, mapRPC(err)
	}
	return reply, nil
}

func (c *Client) entryCall(method rpc, fields map[string]interface{}) (EntryState, error) {
	reply, err := c.call(method, fields)
	if err != nil {
		return EntryState{}, err
	}
	return entryFromReply(reply)
}

func hashInto(fields map[string]interface{}, hash contenthash.Triple) error {
	b58, err := hash.B58String()
	if err != nil {
		return &registry.Error{Kind: registry.KindValidation, Message: "invalid content hash", Cause: err}
	}
	fields["hash"] = b58
	return nil
}

func proofInto(fields map[string]interface{}, proof registry.Proof) error {
	switch p := proof.(type) {
	case nil:
	case registry.NonceProof:
		fields["nonce"] = float64(p)
	case registry.SaltProof:
		fields["salt"] = fmt.Sprintf("%x", p.Salt)
		fields["initDigest"] = fmt.Sprintf("%x", p.InitDigest)
	default:
		return fmt.Errorf("grpcregistry: unsupported proof type %T", proof)
	}
	return nil
}

func boolField(s *structpb.Struct, name string) bool {
	if s == nil {
		return false
	}
	v, ok := s.GetFields()[name]
	if !ok {
		return false
	}
	return v.GetBoolValue()
}

func delegateFromReply(reply *structpb.Struct) (addr.Delegate, error) {
	raw, ok := stringField(reply, "delegate")
	if !ok || raw == "none" {
		return addr.NoDelegate(), nil
	}
	return addr.ParseDelegate(raw)
}

func entryFromReply(reply *structpb.Struct) (EntryState, error) {
	var st EntryState
	v, _ := numberField(reply, "version")
	st.Version = uint64(v)
	if !boolField(reply, "present") {
		st.Delegate = addr.NoDelegate()
		return st, nil
	}
	st.Present = true
	raw, ok := stringField(reply, "hash")
	if !ok {
		return EntryState{}, fmt.Errorf("grpcregistry: entry reply missing hash")
	}
	hash, err := contenthash.DecodeB58(raw)
	if err != nil {
		return EntryState{}, fmt.Errorf("grpcregistry: entry reply hash: %w", err)
	}
	st.Hash = hash
	d, err := delegateFromReply(reply)
	if err != nil {
		return EntryState{}, err
	}
	st.Delegate = d
	st.SelfAttested = boolField(reply, "selfAttested")
	return st, nil
}
