/*
Package ports defines the driven ports (interfaces) of the wizard core.

These interfaces decouple the navigation engine from the platform it runs on, so
the same engine works behind a terminal, an HTTP client or an MCP agent.

# Key Interfaces

  - HistoryPlatform: The platform session history (push state, pop notifications).
  - TransitionRecorder: Receives every user-driven committed transition.
  - Navigator: The operations a render collaborator invokes on the engine.
*/
package ports
