/*
Package domain contains the core value types shared by units, stores and middleware.

It is kept pure and free of external dependencies.

# Key Entities

  - Action: the {type, payload, error} message reducers consume.
  - Reducer: a pure (state, action) -> state function.
  - BusinessEvent / LifecycleHooks: observability for business actions.
*/
package domain
