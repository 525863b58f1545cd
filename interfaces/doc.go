// Package interfaces defines the types and contracts shared between the
// descriptor resolver and its collaborators, separating them from the
// implementations.
//
// # Descriptor Types
//
// DeviceDescriptor: the resolved description of a DIAL device, carrying the
// Application-URL endpoint used for launching, querying and stopping
// applications, and the device's friendly name.
//
// Resolution: the outcome of a resolution that did not fail. It holds either
// a DeviceDescriptor or an AbsenceReason explaining why the device offered no
// usable descriptor.
//
// # Collaborator Interfaces
//
// DeviceDescriptorResource: fetches a descriptor from a location found during
// discovery.
//
// WarningLogger: receives diagnostics for recoverable failures. *slog.Logger
// satisfies it.
//
// # Errors
//
// ErrInvalidLocation marks caller misuse. *TransportError, matched by
// ErrTransport, marks an unreachable endpoint or a malformed Application-URL.
// Neither is used for conditions a discovery sweep is expected to meet
// routinely; those are absences.
package interfaces
