// Package descriptor resolves DIAL device descriptors.
//
// A DIAL client learns the location of a device descriptor from an SSDP
// response. Fetching that location yields two things the later protocol
// stages need: the Application-URL response header, which names the endpoint
// used to launch, query and stop applications, and an XML body describing the
// device, of which only the friendlyName element is used.
//
// # Outcomes
//
// Resolver.GetDescriptor separates three kinds of outcome:
//
//   - interfaces.ErrInvalidLocation: the caller passed no location.
//   - *interfaces.TransportError: the endpoint could not be reached, the body
//     could not be read, or the device sent a malformed Application-URL.
//   - interfaces.Resolution: either a descriptor, or an absence with the
//     reason (non-http scheme, non-200 status, missing Application-URL).
//
// Absences are logged at warning level through the injected
// interfaces.WarningLogger. A body that is not well-formed XML is logged as
// well and leaves FriendlyName empty.
//
// # Usage Example
//
//	resolver := descriptor.NewResolver(&descriptor.Config{Timeout: 5 * time.Second}, logger)
//	res, err := resolver.Resolve(ctx, ssdpLocation)
//	if err != nil {
//		return err
//	}
//	if !res.Found() {
//		return nil // not a usable DIAL device
//	}
//	launch(res.Descriptor.ApplicationResourceURL)
package descriptor
