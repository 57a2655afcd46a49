package imds

import "context"

// Identity holds the instance attributes embedded in the status page.
type Identity struct {
	InstanceID       string
	InstanceType     string
	AvailabilityZone string
	PublicHostname   string
}

// Complete reports whether every attribute was actually retrieved.
func (id Identity) Complete() bool {
	return id.InstanceID != Sentinel &&
		id.InstanceType != Sentinel &&
		id.AvailabilityZone != Sentinel &&
		id.PublicHostname != Sentinel
}

// Identity collects the instance attributes used by the status page. A
// single token is acquired up front; if that fails every attribute is the
// sentinel. Instances without a public hostname (private subnets) fall
// back to the local hostname.
func (c *Client) Identity(ctx context.Context) Identity {
	token, err := c.Token(ctx)
	if err != nil {
		return Identity{
			InstanceID:       Sentinel,
			InstanceType:     Sentinel,
			AvailabilityZone: Sentinel,
			PublicHostname:   Sentinel,
		}
	}

	get := func(path string) string {
		value, err := c.getWithToken(ctx, token, path)
		if err != nil {
			return Sentinel
		}
		return value
	}

	id := Identity{
		InstanceID:       get("instance-id"),
		InstanceType:     get("instance-type"),
		AvailabilityZone: get("placement/availability-zone"),
		PublicHostname:   get("public-hostname"),
	}

	if id.PublicHostname == Sentinel {
		if local, err := c.getWithToken(ctx, token, "local-hostname"); err == nil {
			id.PublicHostname = local
		}
	}

	return id
}
